package dhsr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"enkadb/dimdb/dgame"
	"enkadb/dimdb/dtree"
)

// rarityLevel reads the rarity from the last character of the rarity enum, as in
// "CombatPowerAvatarRarityType5".
func rarityLevel(kind string, id int, rarity string) (int, error) {
	if rarity != "" {
		if level, err := strconv.Atoi(rarity[len(rarity)-1:]); err == nil {
			return level, nil
		}
	}
	return 0, errors.WithStack(dgame.AssemblyError{
		Game:     dgame.GameHSR,
		EntityID: fmt.Sprintf("%s %d", kind, id),
		Reason:   fmt.Sprintf("rarity level mismatch in %q", rarity),
	})
}

// trimIconPath keeps the first two and the last component of an icon path:
// "SpriteOutput/SkillIcons/Avatar/1001/SkillIcon_1001_Normal.png" becomes
// "SpriteOutput/SkillIcons/SkillIcon_1001_Normal.png".
func trimIconPath(path string) string {
	components := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	if len(components) <= 3 {
		return strings.Join(components, "/")
	}
	return strings.Join(append(components[:2:2], components[len(components)-1]), "/")
}

func (db *DB) AssembleProfilePictures() map[string]EnkaProfilePicture {
	return lo.SliceToMap(db.PlayerIcons, func(icon PlayerIcon) (string, EnkaProfilePicture) {
		return strconv.Itoa(icon.ID), EnkaProfilePicture{Icon: icon.ImagePath}
	})
}

// AssembleCharacters builds honker_characters.json. An unreadable rarity aborts the run.
func (db *DB) AssembleCharacters() (map[string]EnkaCharacter, error) {
	characters := make(map[string]EnkaCharacter, len(db.Avatars))
	for _, avatar := range db.Avatars {
		rarity, err := rarityLevel("character", avatar.ID, avatar.Rarity)
		if err != nil {
			return nil, err
		}
		characters[strconv.Itoa(avatar.ID)] = EnkaCharacter{
			AvatarName:               EnkaHash{Hash: avatar.NameHash},
			AvatarFullName:           EnkaHash{Hash: avatar.FullNameHash},
			Rarity:                   rarity,
			Element:                  avatar.DamageType,
			AvatarBaseType:           avatar.AvatarBaseType,
			AvatarSideIconPath:       strings.ReplaceAll(avatar.AvatarSideIconPath, "Avatar/", ""),
			ActionAvatarHeadIconPath: avatar.ActionAvatarHeadIconPath,
			AvatarCutinFrontImgPath:  avatar.AvatarCutinFrontImgPath,
			RankIDList:               lo.Ternary(avatar.RankIDs == nil, []int{}, avatar.RankIDs),
			SkillList:                lo.Ternary(avatar.SkillIDs == nil, []int{}, avatar.SkillIDs),
		}
	}
	return characters, nil
}

// AssembleWeapons builds honker_weps.json.
func (db *DB) AssembleWeapons() (map[string]EnkaWeapon, error) {
	weapons := make(map[string]EnkaWeapon, len(db.Equipments))
	for _, equipment := range db.Equipments {
		rarity, err := rarityLevel("weapon", equipment.ID, equipment.Rarity)
		if err != nil {
			return nil, err
		}
		weapons[strconv.Itoa(equipment.ID)] = EnkaWeapon{
			Rarity:         rarity,
			AvatarBaseType: equipment.AvatarBaseType,
			EquipmentName:  EnkaHash{Hash: equipment.NameHash},
			ImagePath:      strings.ReplaceAll(equipment.ImagePath, "LightConeMaxFigures", "LightConeFigures"),
		}
	}
	return weapons, nil
}

// AssembleRelics builds honker_relics.json. A relic without icon data is skipped.
func (db *DB) AssembleRelics() (map[string]EnkaRelic, error) {
	type setPiece struct {
		setID int
		kind  string
	}
	icons := make(map[setPiece]string, len(db.RelicDataInfos))
	for _, info := range db.RelicDataInfos {
		piece := setPiece{setID: info.SetID, kind: info.Type}
		if _, ok := icons[piece]; !ok {
			icons[piece] = info.IconPath
		}
	}

	relics := make(map[string]EnkaRelic, len(db.Relics))
	for _, relic := range db.Relics {
		rarity, err := rarityLevel("relic", relic.ID, relic.Rarity)
		if err != nil {
			return nil, err
		}
		icon, ok := icons[setPiece{setID: relic.SetID, kind: relic.Type}]
		if !ok {
			db.logger().Warn("relic set data missing, skipping relic", "relic", relic.ID, "set", relic.SetID)
			continue
		}
		relics[strconv.Itoa(relic.ID)] = EnkaRelic{
			Type:           relic.Type,
			Rarity:         rarity,
			MainAffixGroup: relic.MainAffixGroup,
			SubAffixGroup:  relic.SubAffixGroup,
			Icon:           icon,
			SetID:          relic.SetID,
		}
	}
	return relics, nil
}

// AssembleSkills builds honker_skills.json, one entry per skill-tree point.
func (db *DB) AssembleSkills() map[string]EnkaSkill {
	return lo.SliceToMap(db.SkillTree, func(point SkillTreePoint) (string, EnkaSkill) {
		return strconv.Itoa(point.PointID), EnkaSkill{
			IconPath:  trimIconPath(point.IconPath),
			PointType: point.PointType,
		}
	})
}

func (db *DB) AssembleRanks() map[string]EnkaRank {
	return lo.SliceToMap(db.AvatarRanks, func(rank AvatarRank) (string, EnkaRank) {
		return strconv.Itoa(rank.RankID), EnkaRank{
			IconPath:          trimIconPath(rank.IconPath),
			SkillAddLevelList: rank.SkillAddLevels,
		}
	})
}

func (db *DB) AssembleSkillTree() dtree.Tree {
	return dtree.Reconstruct(lo.Map(db.SkillTree, func(point SkillTreePoint, _ int) dtree.Node {
		return dtree.Node{
			ID:      point.PointID,
			OwnerID: point.AvatarID,
			Level:   point.Level,
			Name:    point.PointName,
			Parent:  point.FirstPrePoint(),
		}
	}))
}

// AssembleMeta builds honker_meta.json: promotion-indexed base stats and the stat
// bonuses of light cones, relics and skill-tree points.
func (db *DB) AssembleMeta() EnkaMeta {
	meta := EnkaMeta{
		Avatar:         make(map[string]map[string]EnkaAvatarMeta),
		Equipment:      make(map[string]map[string]EnkaEquipmentMeta),
		EquipmentSkill: PropsTable{},
		Relic: EnkaRelicMeta{
			MainAffix: make(map[string]map[string]EnkaMainAffix),
			SubAffix:  make(map[string]map[string]EnkaSubAffix),
			SetSkill:  PropsTable{},
		},
		Tree: PropsTable{},
	}

	for _, promotion := range db.AvatarPromotions {
		levels := ensureLevels(meta.Avatar, strconv.Itoa(promotion.AvatarID))
		levels[strconv.Itoa(promotion.Promotion)] = EnkaAvatarMeta{
			HPBase:         promotion.HPBase,
			HPAdd:          promotion.HPAdd,
			AttackBase:     promotion.AttackBase,
			AttackAdd:      promotion.AttackAdd,
			DefenceBase:    promotion.DefenceBase,
			DefenceAdd:     promotion.DefenceAdd,
			SpeedBase:      promotion.SpeedBase,
			CriticalChance: promotion.CriticalChance,
			CriticalDamage: promotion.CriticalDamage,
			BaseAggro:      promotion.BaseAggro,
		}
	}
	for _, promotion := range db.EquipmentPromotions {
		levels := ensureLevels(meta.Equipment, strconv.Itoa(promotion.EquipmentID))
		levels[strconv.Itoa(promotion.Promotion)] = EnkaEquipmentMeta{
			BaseHP:      promotion.BaseHP,
			HPAdd:       promotion.BaseHPAdd,
			BaseAttack:  promotion.BaseAttack,
			AttackAdd:   promotion.BaseAttackAdd,
			BaseDefence: promotion.BaseDefence,
			DefenceAdd:  promotion.BaseDefenceAdd,
		}
	}
	for _, skill := range db.EquipmentSkills {
		for _, property := range skill.Properties {
			meta.EquipmentSkill.set(strconv.Itoa(skill.SkillID), strconv.Itoa(skill.Level), property)
		}
	}
	for _, affix := range db.RelicMainAffixes {
		ensureLevels(meta.Relic.MainAffix, strconv.Itoa(affix.GroupID))[strconv.Itoa(affix.AffixID)] = EnkaMainAffix{
			Property:  affix.Property,
			BaseValue: affix.BaseValue,
			LevelAdd:  affix.LevelAdd,
		}
	}
	for _, affix := range db.RelicSubAffixes {
		ensureLevels(meta.Relic.SubAffix, strconv.Itoa(affix.GroupID))[strconv.Itoa(affix.AffixID)] = EnkaSubAffix{
			Property:  affix.Property,
			BaseValue: affix.BaseValue,
			StepValue: affix.StepValue,
		}
	}
	for _, skill := range db.RelicSetSkills {
		setID, requireNum := strconv.Itoa(skill.SetID), strconv.Itoa(skill.RequireNum)
		meta.Relic.SetSkill.ensure(setID, requireNum)
		for _, property := range skill.Properties {
			meta.Relic.SetSkill.set(setID, requireNum, property)
		}
	}
	for _, point := range db.SkillTree {
		if len(point.StatusAdds) == 0 {
			continue
		}
		meta.Tree.set(strconv.Itoa(point.PointID), strconv.Itoa(point.Level), point.StatusAdds[0])
	}
	return meta
}

func ensureLevels[V any](table map[string]map[string]V, id string) map[string]V {
	levels, ok := table[id]
	if !ok {
		levels = make(map[string]V)
		table[id] = levels
	}
	return levels
}
