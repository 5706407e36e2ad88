package area

// RGBA упаковывает цвет в формат debug-draw (r в младшем байте)
func RGBA(r, g, b, a uint8) uint32 {
	return uint32(r) | uint32(g)<<8 | uint32(b)<<16 | uint32(a)<<24
}

// Color возвращает цвет отрисовки полигона с данным тегом.
// Цвет выбирается по типу области, флаги его подкрашивают.
func Color(t Tag) uint32 {
	var r, g, b uint8
	switch TypeOf(t) {
	case Ground:
		r, g, b = 0, 192, 255 // голубой
	case Water:
		r, g, b = 0, 0, 255 // синий
	case Road:
		r, g, b = 50, 20, 12 // коричневый
	case Grass:
		r, g, b = 0, 255, 0 // зелёный
	default:
		r, g, b = 255, 0, 0 // неожиданный тип
	}

	switch {
	case Has(t, FlagDoor):
		r, g, b = blend(r, 0), blend(g, 255), blend(b, 255)
	case Has(t, FlagJump):
		r, g, b = blend(r, 255), blend(g, 255), blend(b, 0)
	}

	a := uint8(255)
	if Has(t, FlagDisabled) {
		r, g, b, a = r/4, g/4, b/4, 64
	}
	return RGBA(r, g, b, a)
}

func blend(c, tint uint8) uint8 {
	return uint8((uint16(c) + uint16(tint)) / 2)
}
