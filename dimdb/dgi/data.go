package dgi

import (
	"strconv"
	"strings"

	"enkadb/dimdb/dfield"
)

type (
	Avatar struct {
		ID              int
		NameTextMapHash dfield.Hash
		IconName        string
		SideIconName    string
		QualityType     string
		SkillDepotID    int
		WeaponType      string
		// CandSkillDepotIDs is only shipped for protagonists by newer snapshots.
		CandSkillDepotIDs []int
	}
	Skill struct {
		ID                int
		NameTextMapHash   dfield.Hash
		SkillIcon         string
		CostElemType      string
		ProudSkillGroupID *int
	}
	Constellation struct {
		TalentID        int
		Icon            string
		NameTextMapHash dfield.Hash
	}
	Artifact struct {
		ID              int
		EquipType       string
		Icon            string
		NameTextMapHash dfield.Hash
		RankLevel       int
	}
	ArtifactSet struct {
		AffixID         int
		NameTextMapHash dfield.Hash
		OpenConfig      string
	}
	Weapon struct {
		ID              int
		AwakenIcon      string
		Icon            string
		NameTextMapHash dfield.Hash
		RankLevel       int
	}
	Namecard struct {
		ID              int
		Icon            string
		PicPath         []string
		MaterialType    string
		NameTextMapHash dfield.Hash
		RankLevel       int
	}
	FightProp struct {
		TextMapID                 string
		TextMapContentTextMapHash dfield.Hash
	}
	SkillDepot struct {
		ID          int
		EnergySkill int
		Skills      []int
		Talents     []int
	}
	Costume struct {
		SkinID          int
		CharacterID     int
		FrontIconName   string
		SideIconName    string
		NameTextMapHash dfield.Hash
	}
	ProfilePicture struct {
		ID       int
		IconPath string
	}
)

func (r Avatar) IsValid() bool {
	return r.SkillDepotID != 101 &&
		!strings.HasSuffix(r.IconName, "_Kate") &&
		!strings.HasPrefix(strconv.Itoa(r.ID), "11") &&
		r.ID < 10000900
}

func (r Skill) IsPurgeable() bool {
	return strings.HasPrefix(r.SkillIcon, "Skill_S_") &&
		strings.HasSuffix(r.SkillIcon, "_02") &&
		r.ID != 10033
}

func (r Skill) IsValid() bool {
	return r.SkillIcon != "" && !r.IsPurgeable() && r.ProudSkillGroupID != nil
}

func (r ArtifactSet) IsValid() bool {
	return strings.HasPrefix(r.OpenConfig, "Rel")
}

func (r Namecard) IsValid() bool {
	return r.MaterialType == "MATERIAL_NAMECARD"
}

func (r FightProp) IsValid() bool {
	return strings.HasPrefix(r.TextMapID, "FIGHT_PROP")
}

func (r Costume) IsValid() bool {
	return r.FrontIconName != ""
}

// Art is the splash art name of the costume.
func (r Costume) Art() string {
	return strings.ReplaceAll(r.FrontIconName, "AvatarIcon", "Costume")
}

func (r Avatar) NameHashes() []dfield.Hash        { return []dfield.Hash{r.NameTextMapHash} }
func (r Skill) NameHashes() []dfield.Hash         { return []dfield.Hash{r.NameTextMapHash} }
func (r Constellation) NameHashes() []dfield.Hash { return []dfield.Hash{r.NameTextMapHash} }
func (r Artifact) NameHashes() []dfield.Hash      { return []dfield.Hash{r.NameTextMapHash} }
func (r ArtifactSet) NameHashes() []dfield.Hash   { return []dfield.Hash{r.NameTextMapHash} }
func (r Weapon) NameHashes() []dfield.Hash        { return []dfield.Hash{r.NameTextMapHash} }
func (r Namecard) NameHashes() []dfield.Hash      { return []dfield.Hash{r.NameTextMapHash} }
func (r Costume) NameHashes() []dfield.Hash       { return []dfield.Hash{r.NameTextMapHash} }
func (r FightProp) NameHashes() []dfield.Hash {
	return []dfield.Hash{r.TextMapContentTextMapHash}
}
