package tool

import (
	"fmt"
	"strings"
)

// Kind: режим редактирования. Значение одновременно служит индексом слота
// состояния, поэтому любой допустимый Kind строго меньше MaxKinds.
type Kind int

const (
	KindNone Kind = iota
	KindTileEdit
	KindTileHighlight
	KindTempObstacle
	KindNavMeshTester
	KindNavMeshPrune
	KindOffMeshConnection
	KindConvexVolume
	KindCrowd
	MaxKinds
)

var kindNames = [MaxKinds]string{
	"none",
	"tile-edit",
	"tile-highlight",
	"temp-obstacle",
	"navmesh-tester",
	"navmesh-prune",
	"offmesh-connection",
	"convex-volume",
	"crowd",
}

// Подписи для меню инструментов
var kindDescriptions = [MaxKinds]string{
	"None",
	"Create Tiles",
	"Highlight Tile Cache",
	"Create Temp Obstacles",
	"Test Navmesh",
	"Prune Navmesh",
	"Create Off-Mesh Connections",
	"Create Convex Volumes",
	"Create Crowds",
}

// Valid проверяет, что значение лежит в диапазоне [KindNone, MaxKinds)
func (k Kind) Valid() bool {
	return k >= KindNone && k < MaxKinds
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Description возвращает подпись режима для UI
func (k Kind) Description() string {
	if !k.Valid() {
		return k.String()
	}
	return kindDescriptions[k]
}

// Kinds возвращает все режимы, кроме KindNone, по возрастанию
func Kinds() []Kind {
	out := make([]Kind, 0, MaxKinds-1)
	for k := KindNone + 1; k < MaxKinds; k++ {
		out = append(out, k)
	}
	return out
}

// ParseKind разбирает имя режима ("navmesh-tester")
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, kn := range kindNames {
		if kn == n {
			return Kind(i), nil
		}
	}
	return KindNone, fmt.Errorf("unknown tool kind %q", name)
}

// mustValid: проверка предусловия для индексации слотов
func mustValid(k Kind) {
	if !k.Valid() {
		panic(fmt.Sprintf("tool: kind %d out of range [0,%d)", int(k), int(MaxKinds)))
	}
}
