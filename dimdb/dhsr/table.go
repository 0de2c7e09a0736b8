package dhsr

import (
	"github.com/samber/lo"

	"enkadb/dimdb/dfetch"
)

type Table string

const (
	TableAvatar             Table = "AvatarConfig"
	TableAvatarPromotion    Table = "AvatarPromotionConfig"
	TableEquipmentPromotion Table = "EquipmentPromotionConfig"
	TableEquipmentSkill     Table = "EquipmentSkillConfig"
	TableRelicMainAffix     Table = "RelicMainAffixConfig"
	TableRelicSubAffix      Table = "RelicSubAffixConfig"
	TableRelicSetSkill      Table = "RelicSetSkillConfig"
	TableAvatarRank         Table = "AvatarRankConfig"
	TableRelic              Table = "RelicConfig"
	TableRelicDataInfo      Table = "RelicDataInfo"
	TableRelicSet           Table = "RelicSetConfig"
	TableSkillTree          Table = "AvatarSkillTreeConfig"
	TableEquipment          Table = "EquipmentConfig"
	TableAvatarPlayerIcon   Table = "AvatarPlayerIcon"
	TablePlayerIcon         Table = "PlayerIcon"
)

var Tables = []Table{
	TableAvatar,
	TableAvatarPromotion,
	TableEquipmentPromotion,
	TableEquipmentSkill,
	TableRelicMainAffix,
	TableRelicSubAffix,
	TableRelicSetSkill,
	TableAvatarRank,
	TableRelic,
	TableRelicDataInfo,
	TableRelicSet,
	TableSkillTree,
	TableEquipment,
	TableAvatarPlayerIcon,
	TablePlayerIcon,
}

// Tables that upstream extends with an "LD" collab file.
var collabTables = []Table{
	TableAvatar,
	TableAvatarPromotion,
	TableAvatarRank,
	TableSkillTree,
	TableAvatarPlayerIcon,
}

// Raw holds the fetched bytes of the main and the collab tables.
type Raw struct {
	Main   map[Table][]byte
	Collab map[Table][]byte
}

func (t Table) Path() string {
	return "ExcelOutput/" + string(t) + ".json"
}

func (t Table) CollabPath() string {
	return "ExcelOutput/" + string(t) + "LD.json"
}

func (t Table) HasCollab() bool {
	return lo.Contains(collabTables, t)
}

// Requests lists the upstream files every HSR run needs. Collab files are optional.
func Requests() []dfetch.Request {
	main := lo.Map(Tables, func(table Table, _ int) dfetch.Request {
		return dfetch.Request{Path: table.Path()}
	})
	collab := lo.Map(collabTables, func(table Table, _ int) dfetch.Request {
		return dfetch.Request{Path: table.CollabPath(), Optional: true}
	})
	return append(main, collab...)
}

// ByTable re-keys fetched bodies by table.
func ByTable(fetched map[string][]byte) Raw {
	raw := Raw{
		Main:   make(map[Table][]byte, len(Tables)),
		Collab: make(map[Table][]byte, len(collabTables)),
	}
	for _, table := range Tables {
		if body, ok := fetched[table.Path()]; ok {
			raw.Main[table] = body
		}
		if !table.HasCollab() {
			continue
		}
		if body, ok := fetched[table.CollabPath()]; ok {
			raw.Collab[table] = body
		}
	}
	return raw
}
