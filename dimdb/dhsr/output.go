package dhsr

import (
	"enkadb/dimdb/dfield"
)

type (
	EnkaHash struct {
		Hash dfield.Hash `json:"Hash"`
	}
	EnkaCharacter struct {
		AvatarName               EnkaHash `json:"AvatarName"`
		AvatarFullName           EnkaHash `json:"AvatarFullName"`
		Rarity                   int      `json:"Rarity"`
		Element                  string   `json:"Element"`
		AvatarBaseType           string   `json:"AvatarBaseType"`
		AvatarSideIconPath       string   `json:"AvatarSideIconPath"`
		ActionAvatarHeadIconPath string   `json:"ActionAvatarHeadIconPath"`
		AvatarCutinFrontImgPath  string   `json:"AvatarCutinFrontImgPath"`
		RankIDList               []int    `json:"RankIDList"`
		SkillList                []int    `json:"SkillList"`
	}
	EnkaWeapon struct {
		Rarity         int      `json:"Rarity"`
		AvatarBaseType string   `json:"AvatarBaseType"`
		EquipmentName  EnkaHash `json:"EquipmentName"`
		ImagePath      string   `json:"ImagePath"`
	}
	// EnkaRelic keeps upstream's Type verbatim, including its swapped NECK / OBJECT values.
	EnkaRelic struct {
		Type           string `json:"Type"`
		Rarity         int    `json:"Rarity"`
		MainAffixGroup int    `json:"MainAffixGroup"`
		SubAffixGroup  int    `json:"SubAffixGroup"`
		Icon           string `json:"Icon"`
		SetID          int    `json:"SetID"`
	}
	EnkaSkill struct {
		IconPath  string `json:"IconPath"`
		PointType int    `json:"PointType"`
	}
	EnkaRank struct {
		IconPath          string         `json:"IconPath"`
		SkillAddLevelList map[string]int `json:"SkillAddLevelList"`
	}
	EnkaProfilePicture struct {
		Icon string `json:"Icon"`
	}

	EnkaMeta struct {
		Avatar         map[string]map[string]EnkaAvatarMeta    `json:"avatar"`
		Equipment      map[string]map[string]EnkaEquipmentMeta `json:"equipment"`
		EquipmentSkill PropsTable                              `json:"equipmentSkill"`
		Relic          EnkaRelicMeta                           `json:"relic"`
		Tree           PropsTable                              `json:"tree"`
	}
	EnkaAvatarMeta struct {
		HPBase         float64 `json:"HPBase"`
		HPAdd          float64 `json:"HPAdd"`
		AttackBase     float64 `json:"AttackBase"`
		AttackAdd      float64 `json:"AttackAdd"`
		DefenceBase    float64 `json:"DefenceBase"`
		DefenceAdd     float64 `json:"DefenceAdd"`
		SpeedBase      float64 `json:"SpeedBase"`
		CriticalChance float64 `json:"CriticalChance"`
		CriticalDamage float64 `json:"CriticalDamage"`
		BaseAggro      float64 `json:"BaseAggro"`
	}
	EnkaEquipmentMeta struct {
		BaseHP      float64 `json:"BaseHP"`
		HPAdd       float64 `json:"HPAdd"`
		BaseAttack  float64 `json:"BaseAttack"`
		AttackAdd   float64 `json:"AttackAdd"`
		BaseDefence float64 `json:"BaseDefence"`
		DefenceAdd  float64 `json:"DefenceAdd"`
	}
	EnkaRelicMeta struct {
		MainAffix map[string]map[string]EnkaMainAffix `json:"mainAffix"`
		SubAffix  map[string]map[string]EnkaSubAffix  `json:"subAffix"`
		SetSkill  PropsTable                          `json:"setSkill"`
	}
	EnkaMainAffix struct {
		Property  string  `json:"Property"`
		BaseValue float64 `json:"BaseValue"`
		LevelAdd  float64 `json:"LevelAdd"`
	}
	EnkaSubAffix struct {
		Property  string  `json:"Property"`
		BaseValue float64 `json:"BaseValue"`
		StepValue float64 `json:"StepValue"`
	}

	// PropsTable maps id -> level (or piece count) -> stat bonuses.
	PropsTable map[string]map[string]Props
	Props      struct {
		Props map[string]float64 `json:"props"`
	}
)

// set records a bonus, creating the intermediate levels on demand.
func (t PropsTable) set(id string, level string, property Property) {
	props := t.ensure(id, level)
	props.Props[property.Type] = property.Value
}

func (t PropsTable) ensure(id string, level string) Props {
	levels, ok := t[id]
	if !ok {
		levels = make(map[string]Props)
		t[id] = levels
	}
	props, ok := levels[level]
	if !ok {
		props = Props{Props: make(map[string]float64)}
		levels[level] = props
	}
	return props
}
