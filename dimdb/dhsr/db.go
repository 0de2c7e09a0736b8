package dhsr

import (
	"log/slog"
	"slices"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"enkadb/dimdb/dfield"
	"enkadb/dimdb/dgame"
	"enkadb/dimdb/dkey"
	"enkadb/dimdb/dloc"
	"enkadb/ds"
)

// DB holds the decoded and validity-filtered HSR tables of one run. Collab records
// follow the main records of their table.
type DB struct {
	Avatars             []Avatar
	AvatarPromotions    []AvatarPromotion
	EquipmentPromotions []EquipmentPromotion
	EquipmentSkills     []EquipmentSkill
	RelicMainAffixes    []RelicMainAffix
	RelicSubAffixes     []RelicSubAffix
	RelicSetSkills      []RelicSetSkill
	AvatarRanks         []AvatarRank
	Relics              []Relic
	RelicDataInfos      []RelicDataInfo
	RelicSets           []RelicSet
	SkillTree           []SkillTreePoint
	Equipments          []Equipment
	PlayerIcons         []PlayerIcon

	Logger *slog.Logger
}

type tableDecoder struct {
	raw  Raw
	keys dfield.KeyMap
	err  error
}

// decodeFolded folds the PascalCase keys of raw before decoding it.
func decodeFolded[T any](name string, raw []byte, keys dfield.KeyMap, decode func(r *dfield.Reader) T) ([]T, error) {
	if len(raw) == 0 {
		return dfield.DecodeTable(name, raw, keys, decode)
	}
	folded, err := dkey.FoldJSON(raw)
	if err != nil {
		return nil, errors.WithStack(dfield.DecodeError{Table: name, Index: -1, Reason: "invalid JSON"})
	}
	return dfield.DecodeTable(name, folded, keys, decode)
}

func decodeMain[T any](d *tableDecoder, table Table, decode func(r *dfield.Reader) T) []T {
	if d.err != nil {
		return nil
	}
	records, err := decodeFolded(string(table), d.raw.Main[table], d.keys, decode)
	if err != nil {
		d.err = errors.Wrap(err, "NewDB error")
	}
	return records
}

func decodeCollab[T any](d *tableDecoder, table Table, decode func(r *dfield.Reader) T) []T {
	raw := d.raw.Collab[table]
	if d.err != nil || len(raw) == 0 {
		return nil
	}
	records, err := decodeFolded(string(table)+"LD", raw, d.keys, decode)
	if err != nil {
		d.err = errors.Wrap(err, "NewDB error")
	}
	return records
}

func decodeInto[T any](d *tableDecoder, table Table, decode func(r *dfield.Reader) T) []T {
	return slices.Concat(decodeMain(d, table, decode), decodeCollab(d, table, decode))
}

// NewDB decodes every HSR table together with its collab extension.
func NewDB(raw Raw, keys dfield.KeyMap) (*DB, error) {
	d := &tableDecoder{raw: raw, keys: keys}
	db := &DB{
		Avatars: ds.SortedBy(decodeInto(d, TableAvatar, decodeAvatar), func(r Avatar) int {
			return r.ID
		}),
		AvatarPromotions: ds.SortedBy(
			decodeInto(d, TableAvatarPromotion, decodeAvatarPromotion),
			func(r AvatarPromotion) int { return r.AvatarID },
		),
		EquipmentPromotions: decodeMain(d, TableEquipmentPromotion, decodeEquipmentPromotion),
		EquipmentSkills:     decodeMain(d, TableEquipmentSkill, decodeEquipmentSkill),
		RelicMainAffixes:    decodeMain(d, TableRelicMainAffix, decodeRelicMainAffix),
		RelicSubAffixes:     decodeMain(d, TableRelicSubAffix, decodeRelicSubAffix),
		RelicSetSkills:      decodeMain(d, TableRelicSetSkill, decodeRelicSetSkill),
		AvatarRanks: ds.SortedBy(decodeInto(d, TableAvatarRank, decodeAvatarRank), func(r AvatarRank) int {
			return r.RankID
		}),
		Relics:         decodeMain(d, TableRelic, decodeRelic),
		RelicDataInfos: decodeMain(d, TableRelicDataInfo, decodeRelicDataInfo),
		RelicSets:      decodeMain(d, TableRelicSet, decodeRelicSet),
		SkillTree: ds.SortedBy(decodeInto(d, TableSkillTree, decodeSkillTreePoint), func(r SkillTreePoint) int {
			return r.PointID
		}),
		Equipments: decodeMain(d, TableEquipment, decodeEquipment),
		PlayerIcons: slices.Concat(
			decodeMain(d, TableAvatarPlayerIcon, decodePlayerIcon),
			decodeMain(d, TablePlayerIcon, decodePlayerIcon),
			decodeCollab(d, TableAvatarPlayerIcon, decodePlayerIcon),
		),
	}
	if d.err != nil {
		return nil, d.err
	}

	equipmentIDs := lo.SliceToMap(db.Equipments, func(r Equipment) (int, struct{}) {
		return r.ID, struct{}{}
	})
	db.EquipmentPromotions = lo.Filter(db.EquipmentPromotions, func(r EquipmentPromotion, _ int) bool {
		_, ok := equipmentIDs[r.EquipmentID]
		return ok
	})
	return db, nil
}

// NeededHashes lists the text map entries the published files refer to.
func (db *DB) NeededHashes() dfield.HashSet {
	needed := dfield.NewHashSet()
	dfield.CollectHashes(needed, db.Avatars)
	dfield.CollectHashes(needed, db.Equipments)
	dfield.CollectHashes(needed, db.RelicSets)
	return needed
}

func (db *DB) ProtagonistOverrides() []dloc.Override {
	return lo.FilterMap(db.Avatars, func(avatar Avatar, _ int) (dloc.Override, bool) {
		names, ok := dgame.ProtagonistNames(dgame.GameHSR, avatar.ID)
		return dloc.Override{Hash: avatar.NameHash, Names: names}, ok
	})
}

// Bleach drops the records whose name is a test placeholder. Skill-tree points carry
// display strings instead of hashes and are left alone.
func (db *DB) Bleach(forbidden dfield.HashSet) {
	db.Avatars = dfield.Bleach(db.Avatars, forbidden)
	db.Equipments = dfield.Bleach(db.Equipments, forbidden)
	db.EquipmentSkills = dfield.Bleach(db.EquipmentSkills, forbidden)
	db.RelicSets = dfield.Bleach(db.RelicSets, forbidden)
}

// Pack assembles every HSR file. loc becomes hsr.json.
func (db *DB) Pack(loc dloc.EnkaTable) (map[string]any, error) {
	characters, err := db.AssembleCharacters()
	if err != nil {
		return nil, errors.Wrap(err, "Pack error")
	}
	weapons, err := db.AssembleWeapons()
	if err != nil {
		return nil, errors.Wrap(err, "Pack error")
	}
	relics, err := db.AssembleRelics()
	if err != nil {
		return nil, errors.Wrap(err, "Pack error")
	}
	return map[string]any{
		"honker_avatars.json":    db.AssembleProfilePictures(),
		"honker_characters.json": characters,
		"honker_meta.json":       db.AssembleMeta(),
		"honker_ranks.json":      db.AssembleRanks(),
		"honker_relics.json":     relics,
		"honker_skills.json":     db.AssembleSkills(),
		"honker_skilltree.json":  db.AssembleSkillTree(),
		"honker_weps.json":       weapons,
		"hsr.json":               loc,
	}, nil
}

func (db *DB) logger() *slog.Logger {
	if db.Logger == nil {
		return slog.Default()
	}
	return db.Logger
}
