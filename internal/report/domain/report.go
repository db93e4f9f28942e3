package domain

// Table 是报告里的一张表。Headers 为空时不画表头行。
type Table struct {
	Name    string
	Headers []string
	Body    [][]string
}

// ReportContext 是一次报告生成的全部内容，构建后不再修改。
type ReportContext struct {
	UserName string
	CountDay int
	Tables   []Table
}

// 报告的固定结构。
const (
	ZoneCount     = 6
	ResourceCount = 8
	TableCount    = 3 + 2*ZoneCount
)

// ZoneNames 按分区 id 排列。
var ZoneNames = [ZoneCount]string{"Plain 1", "Plain 2", "Height 1", "Height 2", "Lowland 1", "Lowland 2"}

// ZoneCoords 是各分区中心的月面坐标。
var ZoneCoords = [ZoneCount]string{
	`87°48'44"S 57°33'31"E`,
	`87°4'4"S 67°40'13"E`,
	`89°22'46"S 54°44'29"E`,
	`89°41'7"S 48°39'6"E`,
	`89°21'32"S 124°34'2"E`,
	`88°44'32"S 144°45'39"E`,
}

// ResourceLabels 与后端资源数组逐位对应。
var ResourceLabels = [ResourceCount]string{"Water", "Fuel", "Food", "Electricity", "Oxygen", "CO2", "Waste", "Materials"}

// ModuleNames 按模块类型 id 排列。
var ModuleNames = []string{
	"Living module", "Living module", "Administrative module", "Sport module",
	"Medical module", "Plantation", "Research module", "Research module",
	"Research module", "Research module", "Hallway", "Administrative module",
	"Solar power plant", "Repair module", "Cosmodrome", "Communication tower",
	"Landfill", "Landfill", "Manufacturing plant", "Manufacturing plant",
	"Astronomical site", "Mining base", "Warehouse", "Warehouse", "Warehouse", "Warehouse",
}

// 表头与标题文案。
const (
	TitleResources = "Resources:"
	TitleLinks     = "Links between zones:"
	TitleModules   = "Modules:"
	Yes            = "yes"
	No             = "no"
)

var (
	LinkHeaders     = []string{"Zone 1", "Zone 2", "Route", "Power line"}
	ZoneHeaders     = []string{"#", "Resource", "Production", "Consumption"}
	ModuleHeaders   = []string{"#", "Module", "X", "Y"}
	SuccessLabels   = []string{"Mood", "Resource count", "Resource state", "Centralization", "Research pace"}
	DerivedMetricUp = 100
)
