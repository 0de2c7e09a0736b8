package dhsr

import (
	"github.com/tidwall/gjson"

	"enkadb/dimdb/dfield"
)

func decodeAvatar(r *dfield.Reader) Avatar {
	return Avatar{
		ID:                       r.Int("avatarID"),
		NameHash:                 r.Hash("avatarName"),
		FullNameHash:             r.Hash("avatarFullName"),
		Rarity:                   r.String("rarity"),
		DamageType:               r.String("damageType"),
		AvatarBaseType:           r.String("avatarBaseType"),
		AvatarSideIconPath:       r.String("avatarSideIconPath"),
		ActionAvatarHeadIconPath: r.String("actionAvatarHeadIconPath"),
		AvatarCutinFrontImgPath:  r.String("avatarCutinFrontImgPath"),
		RankIDs:                  r.Ints("rankIDList"),
		SkillIDs:                 r.Ints("skillList"),
	}
}

func decodeAvatarPromotion(r *dfield.Reader) AvatarPromotion {
	return AvatarPromotion{
		AvatarID:       r.Int("avatarID"),
		Promotion:      r.IntOr("promotion", 0),
		HPBase:         r.Float("hpBase"),
		HPAdd:          r.Float("hpAdd"),
		AttackBase:     r.Float("attackBase"),
		AttackAdd:      r.Float("attackAdd"),
		DefenceBase:    r.Float("defenceBase"),
		DefenceAdd:     r.Float("defenceAdd"),
		SpeedBase:      r.Float("speedBase"),
		CriticalChance: r.Float("criticalChance"),
		CriticalDamage: r.Float("criticalDamage"),
		BaseAggro:      r.Float("baseAggro"),
	}
}

func decodeEquipmentPromotion(r *dfield.Reader) EquipmentPromotion {
	return EquipmentPromotion{
		EquipmentID:    r.Int("equipmentID"),
		Promotion:      r.IntOr("promotion", 0),
		BaseHP:         r.Float("baseHP"),
		BaseHPAdd:      r.Float("baseHPAdd"),
		BaseAttack:     r.Float("baseAttack"),
		BaseAttackAdd:  r.Float("baseAttackAdd"),
		BaseDefence:    r.Float("baseDefence"),
		BaseDefenceAdd: r.Float("baseDefenceAdd"),
	}
}

func decodeProperty(r *dfield.Reader) Property {
	return Property{
		Type:  r.String("propertyType"),
		Value: r.Float("value"),
	}
}

func decodeProperties(r *dfield.Reader, field string) []Property {
	readers := r.Objects(field)
	properties := make([]Property, 0, len(readers))
	for _, item := range readers {
		properties = append(properties, decodeProperty(item))
	}
	return properties
}

func decodeEquipmentSkill(r *dfield.Reader) EquipmentSkill {
	return EquipmentSkill{
		SkillID:    r.Int("skillID"),
		NameHash:   r.Hash("skillName"),
		Level:      r.Int("level"),
		Properties: decodeProperties(r, "abilityProperty"),
	}
}

func decodeRelicMainAffix(r *dfield.Reader) RelicMainAffix {
	return RelicMainAffix{
		GroupID:   r.Int("groupID"),
		AffixID:   r.Int("affixID"),
		Property:  r.String("property"),
		BaseValue: r.Float("baseValue"),
		LevelAdd:  r.Float("levelAdd"),
	}
}

func decodeRelicSubAffix(r *dfield.Reader) RelicSubAffix {
	return RelicSubAffix{
		GroupID:   r.Int("groupID"),
		AffixID:   r.Int("affixID"),
		Property:  r.String("property"),
		BaseValue: r.Float("baseValue"),
		StepValue: r.Float("stepValue"),
	}
}

// decodeSetProperty reads a property whose two keys rotate between versions. The
// readable names and their configured aliases are tried first; otherwise the string
// member names the stat and the {value} member carries the bonus.
func decodeSetProperty(r *dfield.Reader) (Property, bool) {
	if r.Has("propertyType") && r.Has("value") {
		return Property{Type: r.String("propertyType"), Value: r.Float("value")}, true
	}
	var (
		property          Property
		hasName, hasValue bool
	)
	r.Raw().ForEach(func(_, member gjson.Result) bool {
		switch {
		case member.Type == gjson.String && !hasName:
			property.Type, hasName = member.Str, true
		case member.IsObject() && member.Get("value").Type == gjson.Number && !hasValue:
			property.Value, hasValue = member.Get("value").Float(), true
		}
		return true
	})
	if !hasName || !hasValue {
		r.Fail("value", "property needs a name and a {value} member")
		return Property{}, false
	}
	return property, true
}

func decodeRelicSetSkill(r *dfield.Reader) RelicSetSkill {
	readers := r.Objects("propertyList")
	properties := make([]Property, 0, len(readers))
	for _, item := range readers {
		property, ok := decodeSetProperty(item)
		if !ok {
			break
		}
		properties = append(properties, property)
	}
	return RelicSetSkill{
		SetID:      r.Int("setID"),
		RequireNum: r.Int("requireNum"),
		Properties: properties,
	}
}

func decodeAvatarRank(r *dfield.Reader) AvatarRank {
	return AvatarRank{
		RankID:         r.Int("rankID"),
		Rank:           r.IntOr("rank", 0),
		IconPath:       r.String("iconPath"),
		SkillAddLevels: r.IntMap("skillAddLevelList"),
	}
}

func decodeRelic(r *dfield.Reader) Relic {
	return Relic{
		ID:             r.Int("id"),
		SetID:          r.Int("setID"),
		Type:           r.String("type"),
		Rarity:         r.String("rarity"),
		MainAffixGroup: r.Int("mainAffixGroup"),
		SubAffixGroup:  r.Int("subAffixGroup"),
	}
}

func decodeRelicDataInfo(r *dfield.Reader) RelicDataInfo {
	return RelicDataInfo{
		SetID:    r.Int("setID"),
		Type:     r.String("type"),
		IconPath: r.String("iconPath"),
	}
}

func decodeRelicSet(r *dfield.Reader) RelicSet {
	return RelicSet{
		SetID:    r.Int("setID"),
		NameHash: r.Hash("setName"),
		SkillIDs: r.Ints("setSkillList"),
	}
}

func decodeSkillTreePoint(r *dfield.Reader) SkillTreePoint {
	return SkillTreePoint{
		PointID:    r.Int("pointID"),
		Level:      r.Int("level"),
		AvatarID:   r.Int("avatarID"),
		PointType:  r.Int("pointType"),
		PrePoints:  r.Ints("prePoint"),
		StatusAdds: decodeProperties(r, "statusAddList"),
		IconPath:   r.String("iconPath"),
		PointName:  r.StringOr("pointName", ""),
	}
}

func decodeEquipment(r *dfield.Reader) Equipment {
	return Equipment{
		ID:             r.Int("equipmentID"),
		NameHash:       r.Hash("equipmentName"),
		Rarity:         r.String("rarity"),
		AvatarBaseType: r.String("avatarBaseType"),
		SkillID:        r.Int("skillID"),
		ImagePath:      r.String("imagePath"),
	}
}

func decodePlayerIcon(r *dfield.Reader) PlayerIcon {
	return PlayerIcon{
		ID:        r.Int("id"),
		ImagePath: r.String("imagePath"),
	}
}
