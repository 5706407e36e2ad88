// Package area описывает 32-битную классификацию полигонов навмеша.
//
// Младшие 24 бита хранят тип области (порядковый номер: земля, вода, дорога...),
// старшие 8 бит отведены под независимые флаги (дверь, прыжок, отключено),
// которые можно объединять с любым типом и друг с другом.
package area

import (
	"errors"
	"fmt"
	"strings"
)

// Tag: классификация полигона: тип области плюс флаги
type Tag uint32

// Маски и значения типов областей
const (
	TypeMask Tag = 0x00ffffff
	FlagMask Tag = ^TypeMask

	Ground Tag = 0x01
	Water  Tag = 0x02
	Road   Tag = 0x03
	Grass  Tag = 0x04
)

// Флаги. Могут комбинироваться с любым типом области.
const (
	FlagDoor     Tag = 0x01000000
	FlagJump     Tag = 0x02000000
	FlagDisabled Tag = 0x04000000
)

var (
	// ErrTypeOutOfRange возвращается, если тип области задевает биты флагов
	ErrTypeOutOfRange = errors.New("area type out of range")
	// ErrFlagOutOfRange возвращается, если флаг задевает биты типа
	ErrFlagOutOfRange = errors.New("area flag out of range")
)

var typeNames = map[Tag]string{
	Ground: "ground",
	Water:  "water",
	Road:   "road",
	Grass:  "grass",
}

var flagNames = []struct {
	flag Tag
	name string
}{
	{FlagDoor, "door"},
	{FlagJump, "jump"},
	{FlagDisabled, "disabled"},
}

// Types возвращает известные типы областей в порядке возрастания
func Types() []Tag {
	return []Tag{Ground, Water, Road, Grass}
}

// Flags возвращает известные флаги в порядке возрастания
func Flags() []Tag {
	return []Tag{FlagDoor, FlagJump, FlagDisabled}
}

// TypeOf извлекает тип области
func TypeOf(t Tag) Tag {
	return t & TypeMask
}

// FlagsOf извлекает флаги
func FlagsOf(t Tag) Tag {
	return t &^ TypeMask
}

// Combine объединяет тип области с флагами. Тип должен лежать целиком в TypeMask,
// каждый флаг целиком в старших битах.
func Combine(typ Tag, flags ...Tag) (Tag, error) {
	if typ&^TypeMask != 0 {
		return 0, fmt.Errorf("%w: 0x%08x", ErrTypeOutOfRange, uint32(typ))
	}
	result := typ
	for _, f := range flags {
		if f&TypeMask != 0 {
			return 0, fmt.Errorf("%w: 0x%08x", ErrFlagOutOfRange, uint32(f))
		}
		result |= f
	}
	return result, nil
}

// MustCombine как Combine, но паникует на некорректных масках
func MustCombine(typ Tag, flags ...Tag) Tag {
	t, err := Combine(typ, flags...)
	if err != nil {
		panic(err)
	}
	return t
}

// Mask объединяет тип и флаги, молча отбрасывая биты вне своих диапазонов
func Mask(typ Tag, flags ...Tag) Tag {
	result := typ & TypeMask
	for _, f := range flags {
		result |= f & FlagMask
	}
	return result
}

// Has проверяет, что все биты flag выставлены
func Has(t, flag Tag) bool {
	return flag != 0 && t&flag == flag
}

// With возвращает тег с добавленным флагом (биты вне диапазона флагов отбрасываются)
func With(t, flag Tag) Tag {
	return t | (flag & FlagMask)
}

// Without возвращает тег со снятым флагом
func Without(t, flag Tag) Tag {
	return t &^ (flag & FlagMask)
}

// Name возвращает имя типа области либо "type(N)" для неизвестных
func Name(t Tag) string {
	typ := TypeOf(t)
	if name, ok := typeNames[typ]; ok {
		return name
	}
	return fmt.Sprintf("type(%d)", uint32(typ))
}

// FlagName возвращает имя одиночного флага
func FlagName(flag Tag) string {
	for _, f := range flagNames {
		if f.flag == flag {
			return f.name
		}
	}
	return fmt.Sprintf("flag(0x%08x)", uint32(flag))
}

// String формирует метку вида "road|door|jump"
func (t Tag) String() string {
	parts := []string{Name(t)}
	rest := FlagsOf(t)
	for _, f := range flagNames {
		if rest&f.flag != 0 {
			parts = append(parts, f.name)
			rest &^= f.flag
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%08x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

// ParseType разбирает имя типа области
func ParseType(name string) (Tag, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for t, tn := range typeNames {
		if tn == n {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown area type %q", name)
}

// ParseFlag разбирает имя флага
func ParseFlag(name string) (Tag, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, f := range flagNames {
		if f.name == n {
			return f.flag, nil
		}
	}
	return 0, fmt.Errorf("unknown area flag %q", name)
}

// Parse разбирает метку вида "road|door" обратно в тег
func Parse(label string) (Tag, error) {
	parts := strings.Split(label, "|")
	typ, err := ParseType(parts[0])
	if err != nil {
		return 0, err
	}
	flags := make([]Tag, 0, len(parts)-1)
	for _, p := range parts[1:] {
		f, err := ParseFlag(p)
		if err != nil {
			return 0, err
		}
		flags = append(flags, f)
	}
	return Combine(typ, flags...)
}
