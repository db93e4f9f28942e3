package api

// 以下类型与后端 JSON 一一对应，字段名保持后端写法。

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserInfo 是登录和建殖民地时返回的完整用户状态。
type UserInfo struct {
	Name              string        `json:"name"`
	ID                int64         `json:"id"`
	CurDay            int           `json:"curDay"`
	DayBeforeDelivery int           `json:"dayBeforeDelivery"`
	Live              bool          `json:"live"`
	Resources         []ResourceDTO `json:"resources"`
	Links             []LinkDTO     `json:"links"`
	Modules           []ModuleDTO   `json:"modules"`
}

type ResourceDTO struct {
	Type       int   `json:"type"`
	Count      int64 `json:"count"`
	Production int64 `json:"production"`
}

type LinkDTO struct {
	Type    int `json:"type"`
	IDZone1 int `json:"idZone1"`
	IDZone2 int `json:"idZone2"`
}

// ModuleDTO 的 X/Y 是后端坐标，转成客户端坐标请用 FromWire(m.Wire())。
type ModuleDTO struct {
	ID         int64 `json:"id"`
	IDZone     int   `json:"idZone"`
	ModuleType int   `json:"moduleType"`
	X          int   `json:"x"`
	Y          int   `json:"y"`
}

func (m ModuleDTO) Wire() WireCoord {
	return WireCoord{X: m.X, Y: m.Y}
}

type ModuleTypeDTO struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	PeopleRequired int    `json:"peopleRequired"`
	Cost           int64  `json:"cost"`
	IsLivingModule bool   `json:"isLivingModule"`
}

type ModuleTypesResponse struct {
	ModuleTypes []ModuleTypeDTO `json:"moduleTypes"`
}

// ModulePlace 是放置校验与建造的请求体。
type ModulePlace struct {
	IDUser     int64 `json:"id_user"`
	ModuleType int   `json:"module_type"`
	X          int   `json:"x"`
	Y          int   `json:"y"`
	IDZone     int   `json:"id_zone"`
}

type CheckedPlace struct {
	Possible       bool    `json:"possible"`
	Relief         int     `json:"relief"`
	Rationality    int     `json:"rationality"`
	Height         float64 `json:"height"`
	Angle          float64 `json:"angle"`
	Illumination   int     `json:"illumination"`
	ZoneName       string  `json:"zoneName"`
	LunarLatitude  float64 `json:"lunarLatitude"`
	LunarLongitude float64 `json:"lunarLongitude"`
	IsFlatArea     bool    `json:"isFlatArea"`
	Message        string  `json:"message,omitempty"`
}

// CellTerrain 是单格地形查询结果，航天港放置前用。
type CellTerrain struct {
	Slope    float64 `json:"slope"`
	FlatArea float64 `json:"flatArea"`
}

type Optimality struct {
	ID          int64 `json:"id"`
	Relief      int   `json:"relief"`
	Rationality int   `json:"rationality"`
}

type Statistics struct {
	CountDay        int              `json:"countDay"`
	Successful      int              `json:"successful"`
	CountResources  []float64        `json:"countResources"`
	SumProduction   []float64        `json:"sumProduction"`
	SumConsumption  []float64        `json:"sumConsumption"`
	ZoneProductions []ZoneProduction `json:"zoneProductions"`
}

type ZoneProduction struct {
	ID          int       `json:"id"`
	Production  []float64 `json:"production"`
	Consumption []float64 `json:"consumption"`
}

type SuccessMetrics struct {
	Successful     int    `json:"successful"`
	Mood           int    `json:"mood"`
	ContPeople     int    `json:"contPeople"`
	NeedContPeople int    `json:"needContPeople"`
	Resources      string `json:"resources"`
	Central        string `json:"central"`
	Search         int    `json:"search"`
}

// DayChange 是推进一天后的结果，Resources 为按资源顺序排列的增量。
type DayChange struct {
	Live      bool    `json:"live"`
	Resources []int64 `json:"resources"`
}

type ColonizationStatus struct {
	Finished bool `json:"finished"`
	Live     bool `json:"live"`
	CurDay   int  `json:"curDay"`
}

type LinkKey struct {
	Type    int   `json:"type"`
	IDUser  int64 `json:"id_user"`
	IDZone1 int   `json:"id_zone1"`
	IDZone2 int   `json:"id_zone2"`
}

type LinkRequest struct {
	PrimaryKey LinkKey `json:"primaryKey"`
}

type LinkCheck struct {
	Possible bool   `json:"possible"`
	Cost     int64  `json:"cost"`
	Message  string `json:"message,omitempty"`
}

type Area struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// ZoneTerrain 的 Illumination 缺省时由调用方补默认值。
type ZoneTerrain struct {
	Type         string        `json:"type"`
	Illumination *float64      `json:"illumination,omitempty"`
	Cells        []TerrainCell `json:"cells"`
}

type TerrainCell struct {
	X      int     `json:"x"`
	Y      int     `json:"y"`
	Height float64 `json:"height"`
	Angle  float64 `json:"angle"`
}

type SuitabilityCell struct {
	X     int     `json:"x"`
	Y     int     `json:"y"`
	Score float64 `json:"score"`
}

type LunarCoordinates struct {
	Latitude     string  `json:"latitude"`
	Longitude    string  `json:"longitude"`
	Zone         string  `json:"zone"`
	RawLatitude  float64 `json:"raw_latitude"`
	RawLongitude float64 `json:"raw_longitude"`
}
