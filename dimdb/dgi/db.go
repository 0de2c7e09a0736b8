package dgi

import (
	"log/slog"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"enkadb/dimdb/dfield"
	"enkadb/dimdb/dgame"
	"enkadb/dimdb/dloc"
)

// DB holds the decoded and validity-filtered GI tables of one run.
type DB struct {
	Avatars         []Avatar
	Skills          []Skill
	Constellations  []Constellation
	Artifacts       []Artifact
	ArtifactSets    []ArtifactSet
	Weapons         []Weapon
	Namecards       []Namecard
	FightProps      []FightProp
	SkillDepots     []SkillDepot
	Costumes        []Costume
	ProfilePictures []ProfilePicture

	Logger *slog.Logger
}

type tableDecoder struct {
	raw  map[Table][]byte
	keys dfield.KeyMap
	err  error
}

func decodeInto[T any](d *tableDecoder, table Table, decode func(r *dfield.Reader) T) []T {
	if d.err != nil {
		return nil
	}
	records, err := dfield.DecodeTable(string(table), d.raw[table], d.keys, decode)
	if err != nil {
		d.err = errors.Wrap(err, "NewDB error")
	}
	return records
}

// NewDB decodes every GI table. Aliases in keys resolve obfuscated field names.
func NewDB(raw map[Table][]byte, keys dfield.KeyMap) (*DB, error) {
	d := &tableDecoder{raw: raw, keys: keys}
	db := &DB{
		Avatars:         decodeInto(d, TableAvatar, decodeAvatar),
		Skills:          decodeInto(d, TableSkill, decodeSkill),
		Constellations:  decodeInto(d, TableConstellation, decodeConstellation),
		Artifacts:       decodeInto(d, TableArtifact, decodeArtifact),
		ArtifactSets:    decodeInto(d, TableArtifactSet, decodeArtifactSet),
		Weapons:         decodeInto(d, TableWeapon, decodeWeapon),
		Namecards:       decodeInto(d, TableNamecard, decodeNamecard),
		FightProps:      decodeInto(d, TableFightProp, decodeFightProp),
		SkillDepots:     decodeInto(d, TableSkillDepot, decodeSkillDepot),
		Costumes:        decodeInto(d, TableCostume, decodeCostume),
		ProfilePictures: decodeInto(d, TableProfilePicture, decodeProfilePicture),
	}
	if d.err != nil {
		return nil, d.err
	}
	return db, nil
}

// NeededHashes lists the text map entries the published files refer to.
func (db *DB) NeededHashes() dfield.HashSet {
	needed := dfield.NewHashSet()
	dfield.CollectHashes(needed, db.Avatars)
	dfield.CollectHashes(needed, db.ArtifactSets)
	dfield.CollectHashes(needed, db.Weapons)
	dfield.CollectHashes(needed, db.Namecards)
	return needed
}

func (db *DB) ProtagonistOverrides() []dloc.Override {
	return lo.FilterMap(db.Avatars, func(avatar Avatar, _ int) (dloc.Override, bool) {
		names, ok := dgame.ProtagonistNames(dgame.GameGI, avatar.ID)
		return dloc.Override{Hash: avatar.NameTextMapHash, Names: names}, ok
	})
}

// Bleach drops the records whose name is a test placeholder.
func (db *DB) Bleach(forbidden dfield.HashSet) {
	db.Avatars = dfield.Bleach(db.Avatars, forbidden)
	db.Skills = dfield.Bleach(db.Skills, forbidden)
	db.Constellations = dfield.Bleach(db.Constellations, forbidden)
	db.Artifacts = dfield.Bleach(db.Artifacts, forbidden)
	db.ArtifactSets = dfield.Bleach(db.ArtifactSets, forbidden)
	db.Weapons = dfield.Bleach(db.Weapons, forbidden)
	db.Namecards = dfield.Bleach(db.Namecards, forbidden)
	db.FightProps = dfield.Bleach(db.FightProps, forbidden)
	db.Costumes = dfield.Bleach(db.Costumes, forbidden)
}

// Pack assembles every GI file. loc becomes loc.json.
func (db *DB) Pack(loc dloc.EnkaTable) (map[string]any, error) {
	characters, err := db.AssembleCharacters()
	if err != nil {
		return nil, errors.Wrap(err, "Pack error")
	}
	return map[string]any{
		"loc.json":        loc,
		"characters.json": characters,
		"namecards.json":  db.AssembleNamecards(),
		"pfps.json":       db.AssembleProfilePictures(),
	}, nil
}

func (db *DB) logger() *slog.Logger {
	if db.Logger == nil {
		return slog.Default()
	}
	return db.Logger
}
