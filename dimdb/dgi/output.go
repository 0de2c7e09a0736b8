package dgi

import (
	"enkadb/dimdb/dfield"
)

type (
	EnkaCharacter struct {
		Consts          []string               `json:"Consts"`
		Costumes        map[string]EnkaCostume `json:"Costumes,omitempty"`
		Element         string                 `json:"Element"`
		NameTextMapHash dfield.Hash            `json:"NameTextMapHash"`
		ProudMap        map[string]int         `json:"ProudMap"`
		QualityType     string                 `json:"QualityType"`
		SideIconName    string                 `json:"SideIconName"`
		SkillOrder      []int                  `json:"SkillOrder"`
		Skills          map[string]string      `json:"Skills"`
		WeaponType      string                 `json:"WeaponType"`
	}
	EnkaCostume struct {
		Art          string `json:"art"`
		AvatarID     int    `json:"avatarId"`
		Icon         string `json:"icon"`
		SideIconName string `json:"sideIconName"`
	}
	EnkaNamecard struct {
		Icon string `json:"icon"`
	}
	EnkaProfilePicture struct {
		IconPath string `json:"iconPath"`
	}
)
