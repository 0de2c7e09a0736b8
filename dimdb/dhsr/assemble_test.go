package dhsr

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enkadb/dimdb/dfetch"
	"enkadb/dimdb/dfield"
	"enkadb/dimdb/dgame"
	"enkadb/dimdb/dloc"
	"enkadb/dimdb/dtree"
)

type record = map[string]any

func value(v float64) record {
	return record{"Value": v}
}

func hash(h int64) record {
	return record{"Hash": h}
}

// fixture is a minimal HSR snapshot in upstream PascalCase: March 7th, one light cone,
// one relic set.
func fixture() map[Table][]record {
	return map[Table][]record{
		TableAvatar: {
			{
				"AvatarID": 1001, "AvatarName": hash(-531793651), "AvatarFullName": hash(-1063124016),
				"Rarity": "CombatPowerAvatarRarityType4", "DamageType": "Ice", "AvatarBaseType": "Knight",
				"AvatarSideIconPath":       "SpriteOutput/AvatarRoundIcon/Avatar/1001.png",
				"ActionAvatarHeadIconPath": "SpriteOutput/AvatarIconTeam/1001B.png",
				"AvatarCutinFrontImgPath":  "SpriteOutput/AvatarDrawCard/1001.png",
				"RankIDList":               []int{100101, 100102, 100103, 100104, 100105, 100106},
				"SkillList":                []int{100101, 100102, 100103, 100104, 100106, 100107},
			},
		},
		TableAvatarPromotion: {
			{
				"AvatarID": 1001, "MaxLevel": 20, "HPBase": value(144), "HPAdd": value(7.2),
				"AttackBase": value(69.6), "AttackAdd": value(3.48), "DefenceBase": value(78),
				"DefenceAdd": value(3.9), "SpeedBase": value(101), "CriticalChance": value(0.05),
				"CriticalDamage": value(0.5), "BaseAggro": value(150),
			},
		},
		TableEquipmentPromotion: {
			{
				"EquipmentID": 20000, "Promotion": 1, "BaseHP": value(38.4), "BaseHPAdd": value(5.76),
				"BaseAttack": value(14.4), "BaseAttackAdd": value(2.16), "BaseDefence": value(12),
				"BaseDefenceAdd": value(1.8),
			},
			{
				"EquipmentID": 29999, "BaseHP": value(1), "BaseHPAdd": value(1), "BaseAttack": value(1),
				"BaseAttackAdd": value(1), "BaseDefence": value(1), "BaseDefenceAdd": value(1),
			},
		},
		TableEquipmentSkill: {
			{
				"SkillID": 20000, "SkillName": hash(1), "Level": 1,
				"AbilityProperty": []record{{"PropertyType": "CriticalChanceBase", "Value": value(0.06)}},
			},
		},
		TableRelicMainAffix: {
			{"GroupID": 21, "AffixID": 1, "Property": "HPDelta", "BaseValue": value(45.1584), "LevelAdd": value(15.80544)},
		},
		TableRelicSubAffix: {
			{"GroupID": 2, "AffixID": 1, "Property": "HPDelta", "BaseValue": value(13.548), "StepValue": value(1.6935), "StepNum": 2},
		},
		TableRelicSetSkill: {
			{"SetID": 101, "RequireNum": 2, "PropertyList": []record{{"NKOJEKOHJJA": "HealRatioBase", "JJBOOALOJGB": value(0.1)}}},
			{"SetID": 101, "RequireNum": 4, "PropertyList": []record{}},
		},
		TableAvatarRank: {
			{"RankID": 100101, "Rank": 1, "IconPath": "SpriteOutput/SkillIcons/Avatar/1001/SkillIcon_1001_Rank1.png", "SkillAddLevelList": record{}},
		},
		TableRelic: {
			{"ID": 31011, "SetID": 101, "Type": "HEAD", "Rarity": "CombatPowerRelicRarity2", "MainAffixGroup": 21, "SubAffixGroup": 2},
			{"ID": 31012, "SetID": 101, "Type": "HAND", "Rarity": "CombatPowerRelicRarity2", "MainAffixGroup": 22, "SubAffixGroup": 2},
		},
		TableRelicDataInfo: {
			{"SetID": 101, "Type": "HEAD", "IconPath": "SpriteOutput/ItemIcon/RelicIcons/IconRelic_101_1.png", "RelicName": "Passerby's Rejuvenated Wooden Hairstick"},
		},
		TableRelicSet: {
			{"SetID": 101, "SetSkillList": []int{101}, "SetName": hash(5), "Release": true},
		},
		TableSkillTree: {
			{
				"PointID": 1001001, "Level": 1, "AvatarID": 1001, "PointType": 2, "PrePoint": []int{},
				"IconPath": "SpriteOutput/SkillIcons/Avatar/1001/SkillIcon_1001_Normal.png", "PointName": "",
			},
			{
				"PointID": 1001101, "Level": 1, "AvatarID": 1001, "PointType": 3, "PrePoint": []int{},
				"IconPath": "SpriteOutput/SkillIcons/Avatar/1001/SkillIcon_1001_SkillTree1.png", "PointName": "Purify",
			},
			{
				"PointID": 1001201, "Level": 1, "AvatarID": 1001, "PointType": 1, "PrePoint": []int{1001101},
				"StatusAddList": []record{{"PropertyType": "IceAddedRatio", "Value": value(0.032)}},
				"IconPath":      "SpriteOutput/SkillIcons/Avatar/1001/SkillIcon_1001_SkillTree4.png", "PointName": "Ice DMG Boost",
			},
		},
		TableEquipment: {
			{
				"EquipmentID": 20000, "EquipmentName": hash(-234052537), "Rarity": "CombatPowerLightconeRarity3",
				"AvatarBaseType": "Rogue", "SkillID": 20000, "ImagePath": "SpriteOutput/LightConeMaxFigures/20000.png",
			},
		},
		TableAvatarPlayerIcon: {{"ID": 201001, "ImagePath": "SpriteOutput/AvatarRoundIcon/1001.png"}},
		TablePlayerIcon:       {{"ID": 200001, "ImagePath": "SpriteOutput/AvatarRoundIcon/200001.png"}},
	}
}

func collabFixture() map[Table][]record {
	return map[Table][]record{
		TableAvatar: {
			{
				"AvatarID": 1402, "AvatarName": hash(77), "AvatarFullName": hash(78),
				"Rarity": "CombatPowerAvatarRarityType5", "DamageType": "Fire", "AvatarBaseType": "Warrior",
				"AvatarSideIconPath": "SpriteOutput/AvatarRoundIcon/Avatar/1402.png", "ActionAvatarHeadIconPath": "",
				"AvatarCutinFrontImgPath": "", "RankIDList": []int{}, "SkillList": []int{},
			},
		},
		TableAvatarPlayerIcon: {{"ID": 201001, "ImagePath": "SpriteOutput/AvatarRoundIcon/Collab.png"}},
	}
}

func encode(t *testing.T, tables map[Table][]record) map[Table][]byte {
	t.Helper()
	raw := make(map[Table][]byte, len(tables))
	for table, records := range tables {
		encoded, err := json.Marshal(records)
		require.NoError(t, err)
		raw[table] = encoded
	}
	return raw
}

func newTestDB(t *testing.T, main map[Table][]record, collab map[Table][]record) (*DB, *bytes.Buffer) {
	t.Helper()
	db, err := NewDB(Raw{Main: encode(t, main), Collab: encode(t, collab)}, nil)
	require.NoError(t, err)
	logs := &bytes.Buffer{}
	db.Logger = slog.New(slog.NewTextHandler(logs, nil))
	return db, logs
}

func TestRequests(t *testing.T) {
	requests := Requests()

	assert.Len(t, requests, len(Tables)+len(collabTables))
	assert.Contains(t, requests, dfetch.Request{Path: "ExcelOutput/AvatarConfig.json"})
	assert.Contains(t, requests, dfetch.Request{Path: "ExcelOutput/AvatarSkillTreeConfigLD.json", Optional: true})
	assert.NotContains(t, requests, dfetch.Request{Path: "ExcelOutput/RelicConfigLD.json", Optional: true})

	raw := ByTable(map[string][]byte{
		"ExcelOutput/AvatarConfig.json":   []byte(`[]`),
		"ExcelOutput/AvatarConfigLD.json": []byte(`[]`),
		"ExcelOutput/RelicConfigLD.json":  []byte(`[]`),
	})
	assert.Len(t, raw.Main, 1)
	assert.Len(t, raw.Collab, 1)
}

func TestNewDB_CollabAndValidity(t *testing.T) {
	main := fixture()
	main[TableAvatar] = append(main[TableAvatar],
		record{"AvatarID": 7001, "AvatarName": hash(1), "AvatarFullName": hash(1), "Rarity": "", "DamageType": "", "AvatarBaseType": "", "AvatarSideIconPath": "", "ActionAvatarHeadIconPath": "", "AvatarCutinFrontImgPath": ""},
		record{"AvatarID": 1099, "AvatarName": hash(1), "AvatarFullName": hash(1), "Rarity": "", "DamageType": "", "AvatarBaseType": "", "AvatarSideIconPath": "", "ActionAvatarHeadIconPath": "", "AvatarCutinFrontImgPath": "", "RankIDList": []int{700001}},
	)
	db, _ := newTestDB(t, main, collabFixture())

	require.Len(t, db.Avatars, 2)
	assert.Equal(t, []int{1001, 1402}, []int{db.Avatars[0].ID, db.Avatars[1].ID})
	assert.Len(t, db.EquipmentPromotions, 1)
	assert.Equal(t, 1, db.EquipmentPromotions[0].Promotion)
	assert.Equal(t, []Property{{Type: "HealRatioBase", Value: 0.1}}, db.RelicSetSkills[0].Properties)
	assert.Equal(t, 1001101, db.SkillTree[2].FirstPrePoint())
}

func TestNewDB_MissingTable(t *testing.T) {
	main := fixture()
	delete(main, TableRelicDataInfo)

	_, err := NewDB(Raw{Main: encode(t, main)}, nil)

	var decodeErr dfield.DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, string(TableRelicDataInfo), decodeErr.Table)
	assert.Equal(t, "missing table bytes", decodeErr.Reason)
}

func TestNewDB_MalformedSetProperty(t *testing.T) {
	main := fixture()
	main[TableRelicSetSkill][0]["PropertyList"] = []record{{"NKOJEKOHJJA": "HealRatioBase"}}

	_, err := NewDB(Raw{Main: encode(t, main)}, nil)

	var decodeErr dfield.DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "propertyList[0].value", decodeErr.Field)
}

func TestNewDB_SetPropertyAliases(t *testing.T) {
	main := fixture()
	main[TableRelicSetSkill][0]["PropertyList"] = []record{
		{"AAAAAAAAAAA": "Decoy", "NKOJEKOHJJA": "HealRatioBase", "JJBOOALOJGB": value(0.1)},
	}
	keys := dfield.KeyMap{
		string(TableRelicSetSkill): {"propertyType": {"nkojekohjja"}, "value": {"jjbooalojgb"}},
	}

	db, err := NewDB(Raw{Main: encode(t, main)}, keys)
	require.NoError(t, err)

	assert.Equal(t, []Property{{Type: "HealRatioBase", Value: 0.1}}, db.RelicSetSkills[0].Properties)

	db, err = NewDB(Raw{Main: encode(t, main)}, nil)
	require.NoError(t, err)

	assert.Equal(t, []Property{{Type: "Decoy", Value: 0.1}}, db.RelicSetSkills[0].Properties)
}

func TestAssembleCharacters(t *testing.T) {
	db, _ := newTestDB(t, fixture(), collabFixture())

	characters, err := db.AssembleCharacters()
	require.NoError(t, err)

	assert.Equal(t, EnkaCharacter{
		AvatarName:               EnkaHash{Hash: 3763173645},
		AvatarFullName:           EnkaHash{Hash: 3231843280},
		Rarity:                   4,
		Element:                  "Ice",
		AvatarBaseType:           "Knight",
		AvatarSideIconPath:       "SpriteOutput/AvatarRoundIcon/1001.png",
		ActionAvatarHeadIconPath: "SpriteOutput/AvatarIconTeam/1001B.png",
		AvatarCutinFrontImgPath:  "SpriteOutput/AvatarDrawCard/1001.png",
		RankIDList:               []int{100101, 100102, 100103, 100104, 100105, 100106},
		SkillList:                []int{100101, 100102, 100103, 100104, 100106, 100107},
	}, characters["1001"])
	assert.Equal(t, 5, characters["1402"].Rarity)
	assert.Equal(t, []int{}, characters["1402"].RankIDList)
}

func TestAssembleCharacters_RarityMismatch(t *testing.T) {
	main := fixture()
	main[TableAvatar][0]["Rarity"] = "CombatPowerAvatarRarityTypeX"
	db, _ := newTestDB(t, main, nil)

	files, err := db.Pack(dloc.EnkaTable{})

	var assemblyErr dgame.AssemblyError
	require.True(t, errors.As(err, &assemblyErr))
	assert.Equal(t, dgame.GameHSR, assemblyErr.Game)
	assert.Contains(t, assemblyErr.EntityID, "1001")
	assert.Nil(t, files)
}

func TestAssembleWeaponsAndRelics(t *testing.T) {
	db, logs := newTestDB(t, fixture(), nil)

	weapons, err := db.AssembleWeapons()
	require.NoError(t, err)
	assert.Equal(t, map[string]EnkaWeapon{
		"20000": {
			Rarity:         3,
			AvatarBaseType: "Rogue",
			EquipmentName:  EnkaHash{Hash: 4060914759},
			ImagePath:      "SpriteOutput/LightConeFigures/20000.png",
		},
	}, weapons)

	relics, err := db.AssembleRelics()
	require.NoError(t, err)
	assert.Equal(t, map[string]EnkaRelic{
		"31011": {
			Type:           "HEAD",
			Rarity:         2,
			MainAffixGroup: 21,
			SubAffixGroup:  2,
			Icon:           "SpriteOutput/ItemIcon/RelicIcons/IconRelic_101_1.png",
			SetID:          101,
		},
	}, relics)
	assert.Contains(t, logs.String(), "relic=31012")
}

func TestAssembleSkillsRanksAndIcons(t *testing.T) {
	db, _ := newTestDB(t, fixture(), collabFixture())

	assert.Equal(t, EnkaSkill{
		IconPath:  "SpriteOutput/SkillIcons/SkillIcon_1001_Normal.png",
		PointType: 2,
	}, db.AssembleSkills()["1001001"])
	assert.Equal(t, map[string]EnkaRank{
		"100101": {
			IconPath:          "SpriteOutput/SkillIcons/SkillIcon_1001_Rank1.png",
			SkillAddLevelList: map[string]int{},
		},
	}, db.AssembleRanks())
	assert.Equal(t, map[string]EnkaProfilePicture{
		"201001": {Icon: "SpriteOutput/AvatarRoundIcon/Collab.png"},
		"200001": {Icon: "SpriteOutput/AvatarRoundIcon/200001.png"},
	}, db.AssembleProfilePictures())
}

func TestTrimIconPath(t *testing.T) {
	assert.Equal(t, "A/B/E.png", trimIconPath("A/B/C/D/E.png"))
	assert.Equal(t, "A/B/C.png", trimIconPath("A/B/C.png"))
	assert.Equal(t, "A/B.png", trimIconPath("/A//B.png"))
	assert.Equal(t, "", trimIconPath(""))
}

func TestAssembleSkillTree(t *testing.T) {
	db, _ := newTestDB(t, fixture(), nil)

	assert.Equal(t, dtree.Tree{
		"1001": {
			dtree.BranchBase:      {dtree.BaseCluster("1001001")},
			dtree.BranchExtension: {dtree.ChainCluster("1001101", "1001201")},
			dtree.BranchSecondary: {},
		},
	}, db.AssembleSkillTree())
}

func TestAssembleMeta(t *testing.T) {
	db, _ := newTestDB(t, fixture(), nil)

	meta := db.AssembleMeta()

	encoded, err := json.Marshal(meta.Relic.SetSkill["101"])
	require.NoError(t, err)
	assert.JSONEq(t, `{"2":{"props":{"HealRatioBase":0.1}},"4":{"props":{}}}`, string(encoded))

	encoded, err = json.Marshal(meta.Tree["1001201"])
	require.NoError(t, err)
	assert.JSONEq(t, `{"1":{"props":{"IceAddedRatio":0.032}}}`, string(encoded))
	assert.NotContains(t, meta.Tree, "1001001")

	assert.Equal(t, 144.0, meta.Avatar["1001"]["0"].HPBase)
	assert.Equal(t, 0.5, meta.Avatar["1001"]["0"].CriticalDamage)
	assert.Equal(t, EnkaEquipmentMeta{
		BaseHP: 38.4, HPAdd: 5.76, BaseAttack: 14.4, AttackAdd: 2.16, BaseDefence: 12, DefenceAdd: 1.8,
	}, meta.Equipment["20000"]["1"])
	assert.NotContains(t, meta.Equipment, "29999")
	assert.Equal(t, map[string]float64{"CriticalChanceBase": 0.06}, meta.EquipmentSkill["20000"]["1"].Props)
	assert.Equal(t, EnkaMainAffix{Property: "HPDelta", BaseValue: 45.1584, LevelAdd: 15.80544}, meta.Relic.MainAffix["21"]["1"])
	assert.Equal(t, EnkaSubAffix{Property: "HPDelta", BaseValue: 13.548, StepValue: 1.6935}, meta.Relic.SubAffix["2"]["1"])
}

func TestDB_HashesOverridesAndBleach(t *testing.T) {
	main := fixture()
	main[TableAvatar] = append(main[TableAvatar], record{
		"AvatarID": 8001, "AvatarName": hash(111), "AvatarFullName": hash(112),
		"Rarity": "CombatPowerAvatarRarityType5", "DamageType": "Physical", "AvatarBaseType": "Warrior",
		"AvatarSideIconPath": "", "ActionAvatarHeadIconPath": "", "AvatarCutinFrontImgPath": "",
	})
	db, _ := newTestDB(t, main, nil)

	assert.ElementsMatch(
		t,
		[]string{"3763173645", "3231843280", "111", "112", "4060914759", "5"},
		db.NeededHashes().Sorted(),
	)
	overrides := db.ProtagonistOverrides()
	require.Len(t, overrides, 1)
	assert.Equal(t, dfield.Hash(111), overrides[0].Hash)
	assert.Equal(t, "穹", overrides[0].Names[dgame.LangZHCN])

	db.Bleach(dfield.NewHashSet("3231843280", "1"))
	assert.Len(t, db.Avatars, 1)
	assert.Empty(t, db.EquipmentSkills)
	assert.Len(t, db.Equipments, 1)
	assert.Len(t, db.SkillTree, 3)
}

func TestPack(t *testing.T) {
	db, _ := newTestDB(t, fixture(), collabFixture())

	files, err := db.Pack(dloc.EnkaTable{"en": {"5": "Passerby of Wandering Cloud"}})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"honker_avatars.json", "honker_characters.json", "honker_meta.json", "honker_ranks.json",
		"honker_relics.json", "honker_skills.json", "honker_skilltree.json", "honker_weps.json", "hsr.json",
	}, lo.Keys(files))
	assert.Equal(t, dloc.EnkaTable{"en": {"5": "Passerby of Wandering Cloud"}}, files["hsr.json"])
}
