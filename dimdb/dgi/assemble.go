package dgi

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"enkadb/dimdb/dgame"
	"enkadb/ds"
)

const protagonistIDBase = 10000000

// Depots whose character is also published under the bare avatar id.
var fallbackDepots = []int{504, 704}

type index struct {
	skills         map[int]Skill
	constellations map[int]Constellation
	depots         map[int]SkillDepot
	costumes       map[int][]Costume
}

func (db *DB) index() index {
	return index{
		skills: lo.KeyBy(db.Skills, func(skill Skill) int { return skill.ID }),
		constellations: lo.KeyBy(db.Constellations, func(constellation Constellation) int {
			return constellation.TalentID
		}),
		depots: lo.KeyBy(db.SkillDepots, func(depot SkillDepot) int { return depot.ID }),
		costumes: lo.GroupBy(
			ds.SortedBy(db.Costumes, func(costume Costume) int { return costume.SkinID }),
			func(costume Costume) int { return costume.CharacterID },
		),
	}
}

// DepotIDs lists the skill depots an avatar fans out to. Protagonists use the explicit
// candidate list when shipped, otherwise the eight depots derived from their id.
func (r Avatar) DepotIDs() ([]int, bool) {
	if !dgame.IsProtagonist(dgame.GameGI, r.ID) {
		return []int{r.SkillDepotID}, false
	}
	if len(r.CandSkillDepotIDs) > 0 {
		return r.CandSkillDepotIDs, true
	}
	base := (r.ID - protagonistIDBase) * 100
	return ds.MakeRange(base+1, base+9, 1), true
}

// AssembleCharacters builds characters.json. A missing depot aborts the run; a variant
// without a resolvable burst element is skipped.
func (db *DB) AssembleCharacters() (map[string]EnkaCharacter, error) {
	idx := db.index()
	characters := make(map[string]EnkaCharacter)
	for _, avatar := range db.Avatars {
		depotIDs, protagonist := avatar.DepotIDs()
		for _, depotID := range depotIDs {
			key := strconv.Itoa(avatar.ID)
			if protagonist {
				key = fmt.Sprintf("%d-%d", avatar.ID, depotID)
			}
			depot, ok := idx.depots[depotID]
			if !ok {
				return nil, errors.WithStack(dgame.AssemblyError{
					Game:     dgame.GameGI,
					EntityID: key,
					Reason:   fmt.Sprintf("skill depot %d is missing", depotID),
				})
			}
			character, ok := db.assembleCharacter(idx, key, avatar, depot)
			if !ok {
				continue
			}
			characters[key] = character
			if protagonist && lo.Contains(fallbackDepots, depotID) {
				characters[strconv.Itoa(avatar.ID)] = character
			}
		}
	}
	return characters, nil
}

func (db *DB) assembleCharacter(idx index, key string, avatar Avatar, depot SkillDepot) (EnkaCharacter, bool) {
	burst, ok := idx.skills[depot.EnergySkill]
	if depot.EnergySkill == 0 || !ok || burst.CostElemType == "" {
		db.logger().Warn(
			"elemental burst missing, skipping character",
			"character", key,
			"energySkill", depot.EnergySkill,
		)
		return EnkaCharacter{}, false
	}

	consts := lo.FilterMap(depot.Talents, func(talentID int, _ int) (string, bool) {
		if talentID == 0 {
			return "", false
		}
		constellation, ok := idx.constellations[talentID]
		if !ok {
			db.logger().Warn("constellation missing, skipping it", "character", key, "talent", talentID)
		}
		return constellation.Icon, ok
	})

	order := append(lo.Without(depot.Skills, 0), depot.EnergySkill)
	skills := make(map[string]string, len(order))
	proudMap := make(map[string]int, len(order))
	order = lo.Filter(order, func(skillID int, _ int) bool {
		skill, ok := idx.skills[skillID]
		if !ok {
			db.logger().Warn("skill mismatch, skipping it", "character", key, "skill", skillID)
			return false
		}
		skills[strconv.Itoa(skillID)] = skill.SkillIcon
		proudMap[strconv.Itoa(skillID)] = lo.FromPtr(skill.ProudSkillGroupID)
		return true
	})

	return EnkaCharacter{
		Consts:          consts,
		Costumes:        assembleCostumes(idx.costumes[avatar.ID]),
		Element:         burst.CostElemType,
		NameTextMapHash: avatar.NameTextMapHash,
		ProudMap:        proudMap,
		QualityType:     avatar.QualityType,
		SideIconName:    avatar.SideIconName,
		SkillOrder:      order,
		Skills:          skills,
		WeaponType:      avatar.WeaponType,
	}, true
}

func assembleCostumes(costumes []Costume) map[string]EnkaCostume {
	assembled := make(map[string]EnkaCostume, len(costumes))
	for _, costume := range costumes {
		if costume.FrontIconName == "" || costume.SideIconName == "" {
			continue
		}
		assembled[strconv.Itoa(costume.SkinID)] = EnkaCostume{
			Art:          costume.Art(),
			AvatarID:     costume.CharacterID,
			Icon:         costume.FrontIconName,
			SideIconName: costume.SideIconName,
		}
	}
	if len(assembled) == 0 {
		return nil
	}
	return assembled
}

// AssembleNamecards builds namecards.json, preferring the "_P" picture of each card.
func (db *DB) AssembleNamecards() map[string]EnkaNamecard {
	namecards := make(map[string]EnkaNamecard, len(db.Namecards))
	for _, namecard := range db.Namecards {
		icon, ok := lo.Find(namecard.PicPath, func(path string) bool {
			return strings.HasSuffix(path, "_P")
		})
		if !ok && namecard.Icon != "" {
			icon, ok = namecard.Icon+"_P", true
		}
		if !ok {
			continue
		}
		namecards[strconv.Itoa(namecard.ID)] = EnkaNamecard{Icon: icon}
	}
	return namecards
}

func (db *DB) AssembleProfilePictures() map[string]EnkaProfilePicture {
	return lo.SliceToMap(db.ProfilePictures, func(pfp ProfilePicture) (string, EnkaProfilePicture) {
		return strconv.Itoa(pfp.ID), EnkaProfilePicture{IconPath: pfp.IconPath}
	})
}
