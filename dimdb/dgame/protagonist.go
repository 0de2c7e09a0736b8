package dgame

import (
	"github.com/samber/lo"
)

var protagonists = map[Game]map[int]map[Language]string{
	GameGI: {
		10000005: localizedName("Aether", map[Language]string{
			LangESES: "Éter",
			LangJAJP: "空",
			LangKOKR: "아이테르",
			LangRURU: "Итэр",
			LangZHCN: "空",
			LangZHTW: "空",
		}),
		10000007: localizedName("Lumine", map[Language]string{
			LangJAJP: "蛍",
			LangKOKR: "루미네",
			LangRURU: "Люмин",
			LangZHCN: "荧",
			LangZHTW: "熒",
		}),
	},
	GameHSR: lo.Assign(
		lo.SliceToMap([]int{8001, 8003, 8005, 8007}, func(id int) (int, map[Language]string) {
			return id, caelus
		}),
		lo.SliceToMap([]int{8002, 8004, 8006, 8008}, func(id int) (int, map[Language]string) {
			return id, stelle
		}),
	),
}

var (
	caelus = localizedName("Caelus", map[Language]string{
		LangJAJP: "穹",
		LangKOKR: "카일루스",
		LangRURU: "Келус",
		LangZHCN: "穹",
		LangZHTW: "穹",
	})
	stelle = localizedName("Stelle", map[Language]string{
		LangJAJP: "星",
		LangKOKR: "스텔레",
		LangRURU: "Стелла",
		LangZHCN: "星",
		LangZHTW: "星",
	})
)

func localizedName(latin string, overrides map[Language]string) map[Language]string {
	names := lo.SliceToMap(allLanguages, func(lang Language) (Language, string) {
		return lang, latin
	})
	return lo.Assign(names, overrides)
}

func IsProtagonist(game Game, avatarID int) bool {
	_, ok := protagonists[game][avatarID]
	return ok
}

// ProtagonistNames returns the per-language display name of a protagonist avatar.
func ProtagonistNames(game Game, avatarID int) (map[Language]string, bool) {
	names, ok := protagonists[game][avatarID]
	return names, ok
}
