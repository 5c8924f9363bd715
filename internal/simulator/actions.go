package simulator

var actionItems = map[string][]string{
	"marriage-subsidy": {
		"お住まいの自治体が実施しているか確認する",
		"婚姻届受理証明書・所得証明書・住居契約書を準備する",
		"市区町村窓口で申請する",
	},
	"tokyo-marriage-passport": {
		"公式サイトまたはアプリで登録する",
		"デジタルパスポートを取得する",
		"協賛店舗で提示して特典を受ける",
	},
	"spouse-deduction": {
		"配偶者の年間所得を確認する",
		"年末調整または確定申告で申告する",
	},
	"spouse-special-deduction": {
		"配偶者の正確な所得金額を確認する",
		"年末調整または確定申告で申告する",
	},
	"social-insurance-dependent": {
		"配偶者の年収が130万円未満か確認する",
		"勤務先に被扶養者異動届を提出する",
		"健康保険証の交付を受ける",
	},
	"minato-marriage-support": {
		"港区公式サイトで最新の支援情報を確認する",
		"各地区総合支所の窓口で相談する",
	},
}

// GenericAction is returned for programs without specific guidance.
const GenericAction = "詳細は公式サイトまたは窓口にお問い合わせください"

// ActionItems returns the next steps for a program slug. The result is a
// fresh slice.
func ActionItems(slug string) []string {
	steps, ok := actionItems[slug]
	if !ok {
		return []string{GenericAction}
	}
	out := make([]string, len(steps))
	copy(out, steps)
	return out
}
