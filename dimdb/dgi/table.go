package dgi

import (
	"github.com/samber/lo"

	"enkadb/dimdb/dfetch"
)

type Table string

const (
	TableAvatar         Table = "AvatarExcelConfigData"
	TableSkill          Table = "AvatarSkillExcelConfigData"
	TableConstellation  Table = "AvatarTalentExcelConfigData"
	TableArtifact       Table = "ReliquaryExcelConfigData"
	TableArtifactSet    Table = "EquipAffixExcelConfigData"
	TableWeapon         Table = "WeaponExcelConfigData"
	TableNamecard       Table = "MaterialExcelConfigData"
	TableFightProp      Table = "ManualTextMapConfigData"
	TableSkillDepot     Table = "AvatarSkillDepotExcelConfigData"
	TableCostume        Table = "AvatarCostumeExcelConfigData"
	TableProfilePicture Table = "ProfilePictureExcelConfigData"
)

var Tables = []Table{
	TableAvatar,
	TableSkill,
	TableConstellation,
	TableArtifact,
	TableArtifactSet,
	TableWeapon,
	TableNamecard,
	TableFightProp,
	TableSkillDepot,
	TableCostume,
	TableProfilePicture,
}

func (t Table) Path() string {
	return "ExcelBinOutput/" + string(t) + ".json"
}

// Requests lists the upstream files every GI run needs.
func Requests() []dfetch.Request {
	return lo.Map(Tables, func(table Table, _ int) dfetch.Request {
		return dfetch.Request{Path: table.Path()}
	})
}

// ByTable re-keys fetched bodies by table.
func ByTable(fetched map[string][]byte) map[Table][]byte {
	raw := make(map[Table][]byte, len(Tables))
	for _, table := range Tables {
		if body, ok := fetched[table.Path()]; ok {
			raw[table] = body
		}
	}
	return raw
}
