package dhsr

import (
	"github.com/samber/lo"

	"enkadb/dimdb/dfield"
)

type (
	Avatar struct {
		ID                       int
		NameHash                 dfield.Hash
		FullNameHash             dfield.Hash
		Rarity                   string
		DamageType               string
		AvatarBaseType           string
		AvatarSideIconPath       string
		ActionAvatarHeadIconPath string
		AvatarCutinFrontImgPath  string
		RankIDs                  []int
		SkillIDs                 []int
	}
	AvatarPromotion struct {
		AvatarID       int
		Promotion      int
		HPBase         float64
		HPAdd          float64
		AttackBase     float64
		AttackAdd      float64
		DefenceBase    float64
		DefenceAdd     float64
		SpeedBase      float64
		CriticalChance float64
		CriticalDamage float64
		BaseAggro      float64
	}
	EquipmentPromotion struct {
		EquipmentID    int
		Promotion      int
		BaseHP         float64
		BaseHPAdd      float64
		BaseAttack     float64
		BaseAttackAdd  float64
		BaseDefence    float64
		BaseDefenceAdd float64
	}
	// Property is one named stat bonus.
	Property struct {
		Type  string
		Value float64
	}
	EquipmentSkill struct {
		SkillID    int
		NameHash   dfield.Hash
		Level      int
		Properties []Property
	}
	RelicMainAffix struct {
		GroupID   int
		AffixID   int
		Property  string
		BaseValue float64
		LevelAdd  float64
	}
	RelicSubAffix struct {
		GroupID   int
		AffixID   int
		Property  string
		BaseValue float64
		StepValue float64
	}
	RelicSetSkill struct {
		SetID      int
		RequireNum int
		Properties []Property
	}
	AvatarRank struct {
		RankID         int
		Rank           int
		IconPath       string
		SkillAddLevels map[string]int
	}
	Relic struct {
		ID             int
		SetID          int
		Type           string
		Rarity         string
		MainAffixGroup int
		SubAffixGroup  int
	}
	RelicDataInfo struct {
		SetID    int
		Type     string
		IconPath string
	}
	RelicSet struct {
		SetID    int
		NameHash dfield.Hash
		SkillIDs []int
	}
	SkillTreePoint struct {
		PointID    int
		Level      int
		AvatarID   int
		PointType  int
		PrePoints  []int
		StatusAdds []Property
		IconPath   string
		PointName  string
	}
	Equipment struct {
		ID             int
		NameHash       dfield.Hash
		Rarity         string
		AvatarBaseType string
		SkillID        int
		ImagePath      string
	}
	PlayerIcon struct {
		ID        int
		ImagePath string
	}
)

// Test and enemy-controlled avatars live in these id ranges.
func playableAvatar(id int) bool {
	return (id < 6000 || id >= 8000) && id < 8900
}

func anyWithin(ids []int, from int, to int) bool {
	return lo.SomeBy(ids, func(id int) bool { return id >= from && id < to })
}

func (r Avatar) IsValid() bool {
	return playableAvatar(r.ID) &&
		!anyWithin(r.RankIDs, 700000, 800000) &&
		!anyWithin(r.SkillIDs, 7000000, 8000000)
}

func (r AvatarPromotion) IsValid() bool {
	return playableAvatar(r.AvatarID)
}

func (r EquipmentSkill) IsValid() bool {
	return !anyWithin([]int{r.SkillID}, 7000000, 8000000)
}

func (r RelicSet) IsValid() bool {
	return !anyWithin(r.SkillIDs, 7000000, 8000000)
}

func (r AvatarRank) IsValid() bool {
	return !anyWithin([]int{r.RankID}, 700000, 800000)
}

func (r SkillTreePoint) IsValid() bool {
	return playableAvatar(r.AvatarID)
}

func (r Equipment) IsValid() bool {
	return !anyWithin([]int{r.SkillID}, 7000000, 8000000)
}

// FirstPrePoint is the prerequisite the tree hangs the point under, zero for roots.
func (r SkillTreePoint) FirstPrePoint() int {
	if len(r.PrePoints) == 0 {
		return 0
	}
	return r.PrePoints[0]
}

func (r Avatar) NameHashes() []dfield.Hash {
	return []dfield.Hash{r.NameHash, r.FullNameHash}
}
func (r Equipment) NameHashes() []dfield.Hash      { return []dfield.Hash{r.NameHash} }
func (r EquipmentSkill) NameHashes() []dfield.Hash { return []dfield.Hash{r.NameHash} }
func (r RelicSet) NameHashes() []dfield.Hash       { return []dfield.Hash{r.NameHash} }
