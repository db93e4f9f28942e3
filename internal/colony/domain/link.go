package domain

import "fmt"

// ZoneCount 是地图上固定的分区数。
const ZoneCount = 6

type LinkType int

const (
	LinkPower LinkType = 0
	LinkRoute LinkType = 1
)

func (t LinkType) String() string {
	switch t {
	case LinkPower:
		return "power"
	case LinkRoute:
		return "route"
	default:
		return fmt.Sprintf("link(%d)", int(t))
	}
}

// Link 是两个分区之间的连接，方向按存储顺序，Zone1 到 Zone2。
type Link struct {
	Type  LinkType
	Zone1 int
	Zone2 int
}

// Valid 校验类型与分区编号。
func (l Link) Valid() bool {
	if l.Type != LinkPower && l.Type != LinkRoute {
		return false
	}
	if l.Zone1 == l.Zone2 {
		return false
	}
	return l.Zone1 >= 0 && l.Zone1 < ZoneCount && l.Zone2 >= 0 && l.Zone2 < ZoneCount
}
