package dgi

import (
	"enkadb/dimdb/dfield"
)

func decodeAvatar(r *dfield.Reader) Avatar {
	return Avatar{
		ID:                r.Int("id"),
		NameTextMapHash:   r.Hash("nameTextMapHash"),
		IconName:          r.String("iconName"),
		SideIconName:      r.String("sideIconName"),
		QualityType:       r.String("qualityType"),
		SkillDepotID:      r.Int("skillDepotId"),
		WeaponType:        r.String("weaponType"),
		CandSkillDepotIDs: r.Ints("candSkillDepotIds"),
	}
}

func decodeSkill(r *dfield.Reader) Skill {
	return Skill{
		ID:                r.Int("id"),
		NameTextMapHash:   r.Hash("nameTextMapHash"),
		SkillIcon:         r.StringOr("skillIcon", ""),
		CostElemType:      r.StringOr("costElemType", ""),
		ProudSkillGroupID: r.OptInt("proudSkillGroupId"),
	}
}

func decodeConstellation(r *dfield.Reader) Constellation {
	return Constellation{
		TalentID:        r.Int("talentId"),
		Icon:            r.String("icon"),
		NameTextMapHash: r.Hash("nameTextMapHash"),
	}
}

func decodeArtifact(r *dfield.Reader) Artifact {
	return Artifact{
		ID:              r.Int("id"),
		EquipType:       r.StringOr("equipType", ""),
		Icon:            r.String("icon"),
		NameTextMapHash: r.Hash("nameTextMapHash"),
		RankLevel:       r.IntOr("rankLevel", 4),
	}
}

func decodeArtifactSet(r *dfield.Reader) ArtifactSet {
	return ArtifactSet{
		AffixID:         r.Int("affixId"),
		NameTextMapHash: r.Hash("nameTextMapHash"),
		OpenConfig:      r.StringOr("openConfig", ""),
	}
}

func decodeWeapon(r *dfield.Reader) Weapon {
	return Weapon{
		ID:              r.Int("id"),
		AwakenIcon:      r.StringOr("awakenIcon", ""),
		Icon:            r.String("icon"),
		NameTextMapHash: r.Hash("nameTextMapHash"),
		RankLevel:       r.Int("rankLevel"),
	}
}

func decodeNamecard(r *dfield.Reader) Namecard {
	return Namecard{
		ID:              r.Int("id"),
		Icon:            r.StringOr("icon", ""),
		PicPath:         r.Strings("picPath"),
		MaterialType:    r.StringOr("materialType", ""),
		NameTextMapHash: r.Hash("nameTextMapHash"),
		RankLevel:       r.IntOr("rankLevel", 4),
	}
}

func decodeFightProp(r *dfield.Reader) FightProp {
	return FightProp{
		TextMapID:                 r.String("textMapId"),
		TextMapContentTextMapHash: r.Hash("textMapContentTextMapHash"),
	}
}

func decodeSkillDepot(r *dfield.Reader) SkillDepot {
	return SkillDepot{
		ID:          r.Int("id"),
		EnergySkill: r.IntOr("energySkill", 0),
		Skills:      r.Ints("skills"),
		Talents:     r.Ints("talents"),
	}
}

func decodeCostume(r *dfield.Reader) Costume {
	return Costume{
		SkinID:          r.Int("skinId"),
		CharacterID:     r.Int("characterId"),
		FrontIconName:   r.StringOr("frontIconName", ""),
		SideIconName:    r.StringOr("sideIconName", ""),
		NameTextMapHash: r.Hash("nameTextMapHash"),
	}
}

func decodeProfilePicture(r *dfield.Reader) ProfilePicture {
	return ProfilePicture{
		ID:       r.Int("id"),
		IconPath: r.String("iconPath"),
	}
}
