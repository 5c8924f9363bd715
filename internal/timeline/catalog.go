package timeline

import "fmt"

func days(n int) *int { return &n }

var definitions = []Definition{

	// ═══════════════════════════════════════════════════════
	// 婚姻届関連
	// ═══════════════════════════════════════════════════════
	{
		ID: "marriage-registration", Category: CategoryRegistration, DaysFromMarriage: 0,
		ActionURL: "https://www.moj.go.jp/MINJI/minji04_00072.html", ActionLabel: "法務省で確認",
		Title:             "婚姻届を提出する",
		Description:       "市区町村の窓口に婚姻届を提出します。365日24時間受付可能。",
		Location:          "市区町村の戸籍窓口",
		RequiredDocuments: []string{"婚姻届", "戸籍謄本", "本人確認書類"},
		Tip:               "証人2名の署名・押印が必要です。",
	},
	{
		ID: "new-koseki", Category: CategoryRegistration, DaysFromMarriage: 7,
		ActionURL: "https://www.city.minato.tokyo.jp/kosekitodoke/kurashi/todoke/koseki/shomei.html", ActionLabel: "港区の窓口情報",
		Title:             "新しい戸籍謄本を取得",
		Description:       "各種名義変更に必要。複数部取得しておくと便利。",
		Location:          "本籍地の市区町村窓口",
		RequiredDocuments: []string{"本人確認書類"},
		Tip:               "婚姻届提出後、約1週間で編製されます。",
	},
	{
		ID: "new-juminhyo", Category: CategoryRegistration, DaysFromMarriage: 7,
		ActionURL: "https://www.city.minato.tokyo.jp/jumin/kurashi/todoke/jumin/juminhyo.html", ActionLabel: "港区の窓口情報",
		Title:             "住民票を取得（新姓）",
		Description:       "名義変更の際に必要になります。",
		Location:          "住所地の市区町村窓口",
		RequiredDocuments: []string{"本人確認書類"},
	},

	// ═══════════════════════════════════════════════════════
	// 名義変更（姓変更の場合）
	// ═══════════════════════════════════════════════════════
	{
		ID: "mynumber-card", Category: CategoryNameChange, DaysFromMarriage: 7, DeadlineDaysFromMarriage: days(14),
		ActionURL: "https://www.kojinbango-card.go.jp/procedures-change/", ActionLabel: "公式サイトで確認",
		Title:             "マイナンバーカードの氏名変更",
		Description:       "他の手続きで身分証として使うため最優先で変更。",
		Location:          "市区町村窓口",
		RequiredDocuments: []string{"マイナンバーカード", "新しい戸籍謄本 or 住民票"},
		Tip:               "免許証より先にこちらを変更すると、以降の手続きがスムーズ。",
		Conditions:        []Condition{ConditionNameChanged},
	},
	{
		ID: "drivers-license", Category: CategoryNameChange, DaysFromMarriage: 7,
		ActionURL: "https://www.keishicho.metro.tokyo.lg.jp/menkyo/koshin/kisaijiko/index.html", ActionLabel: "警視庁で確認",
		Title:             "運転免許証の氏名・住所変更",
		Description:       "身分証明書として使うため早めに変更。",
		Location:          "警察署 or 運転免許センター",
		RequiredDocuments: []string{"運転免許証", "住民票（新姓）"},
		Conditions:        []Condition{ConditionNameChanged},
	},
	{
		ID: "health-insurance", Category: CategoryNameChange, DaysFromMarriage: 7, DeadlineDaysFromMarriage: days(14),
		ActionURL: "https://www.nenkin.go.jp/service/kounen/todokesho/hihokensha/20150407-02.html", ActionLabel: "年金機構で確認",
		Title:             "健康保険証の氏名変更",
		Description:       "国保は14日以内に届出が必要。社保は会社経由。",
		Location:          "市区町村窓口（国保）/ 勤務先（社保）",
		RequiredDocuments: []string{"保険証", "届出書", "本人確認書類"},
		Conditions:        []Condition{ConditionNameChanged},
	},
	{
		ID: "pension", Category: CategoryNameChange, DaysFromMarriage: 7, DeadlineDaysFromMarriage: days(14),
		ActionURL: "https://www.nenkin.go.jp/service/seidozenpan/mynumber/mynumber.html", ActionLabel: "ねんきんネット",
		Title:             "年金の氏名変更",
		Description:       "国民年金は14日以内。厚生年金は会社経由。",
		Location:          "市区町村窓口 / 年金事務所",
		RequiredDocuments: []string{"年金手帳 or 基礎年金番号通知書"},
		Conditions:        []Condition{ConditionNameChanged},
	},
	{
		ID: "passport", Category: CategoryNameChange, DaysFromMarriage: 14,
		ActionURL: "https://www.mofa.go.jp/mofaj/toko/passport/pass_5.html", ActionLabel: "外務省で確認",
		Title:             "パスポートの変更",
		Description:       "旅行予定があれば早めに。申請から約1週間で受取。",
		Location:          "旅券事務所",
		RequiredDocuments: []string{"パスポート", "戸籍謄本", "証明写真"},
		Conditions:        []Condition{ConditionNameChanged},
	},
	{
		ID: "bank-accounts", Category: CategoryNameChange, DaysFromMarriage: 14,
		ActionURL: "https://www.zenginkyo.or.jp/article/tag-c/7705/", ActionLabel: "銀行協会で確認",
		Title:             "銀行口座の名義変更",
		Description:       "届出印も変更が必要な場合があります。",
		Location:          "各銀行窓口",
		RequiredDocuments: []string{"通帳", "届出印", "本人確認書類"},
		Conditions:        []Condition{ConditionNameChanged},
	},
	{
		ID: "credit-cards", Category: CategoryNameChange, DaysFromMarriage: 14,
		ActionURL: "/checklists", ActionLabel: "手続きを確認",
		Title:             "クレジットカードの名義変更",
		Description:       "Webで手続き可能なカード会社も多い。",
		Location:          "各カード会社（Web or 電話）",
		RequiredDocuments: []string{},
		Conditions:        []Condition{ConditionNameChanged},
	},
	{
		ID: "mobile-phone", Category: CategoryNameChange, DaysFromMarriage: 21,
		ActionURL: "/checklists", ActionLabel: "手続きを確認",
		Title:             "携帯電話の名義変更",
		Description:       "キャリアショップまたはWebで手続き。",
		Location:          "キャリアショップ or Web",
		RequiredDocuments: []string{"本人確認書類"},
		Conditions:        []Condition{ConditionNameChanged},
	},
	{
		ID: "insurance-policies", Category: CategoryNameChange, DaysFromMarriage: 21,
		ActionURL: "https://www.seiho.or.jp/contact/", ActionLabel: "生命保険協会",
		Title:             "生命保険・損害保険の変更",
		Description:       "受取人変更も忘れずに確認。",
		Location:          "各保険会社",
		RequiredDocuments: []string{"保険証券", "本人確認書類"},
		Conditions:        []Condition{ConditionNameChanged},
	},

	// ═══════════════════════════════════════════════════════
	// 引越し関連
	// ═══════════════════════════════════════════════════════
	{
		ID: "move-out-notice", Category: CategoryMoving, DaysFromMarriage: -14,
		ActionURL: "https://www.city.minato.tokyo.jp/jumin/kurashi/todoke/jumin/tenshutsu.html", ActionLabel: "港区の窓口情報",
		Title:             "転出届の提出",
		Description:       "旧住所の市区町村に届出。引越し14日前から可能。",
		Location:          "旧住所の市区町村窓口",
		RequiredDocuments: []string{"本人確認書類", "印鑑"},
		Conditions:        []Condition{ConditionMoving},
	},
	{
		ID: "move-in-notice", Category: CategoryMoving, DaysFromMarriage: 0, DeadlineDaysFromMarriage: days(14),
		ActionURL: "https://www.city.minato.tokyo.jp/jumin/kurashi/todoke/jumin/tennyuu.html", ActionLabel: "港区の窓口情報",
		Title:             "転入届の提出",
		Description:       "新住所の市区町村に14日以内に届出。",
		Location:          "新住所の市区町村窓口",
		RequiredDocuments: []string{"転出証明書", "本人確認書類", "印鑑"},
		Conditions:        []Condition{ConditionMoving},
	},
	{
		ID: "mail-forwarding", Category: CategoryMoving, DaysFromMarriage: -7,
		ActionURL: "https://www.post.japanpost.jp/service/tenkyo/", ActionLabel: "e転居で申込",
		Title:             "郵便転送届の提出",
		Description:       "旧住所宛の郵便を1年間自動転送。",
		Location:          "郵便局 or e転居（Web）",
		RequiredDocuments: []string{"本人確認書類"},
		Conditions:        []Condition{ConditionMoving},
	},
	{
		ID: "utilities", Category: CategoryMoving, DaysFromMarriage: -14,
		ActionURL: "/checklists", ActionLabel: "手続きを確認",
		Title:             "電気・ガス・水道の変更",
		Description:       "旧居の解約と新居の開始手続き。",
		Location:          "各事業者（電話 or Web）",
		RequiredDocuments: []string{},
		Conditions:        []Condition{ConditionMoving},
	},
	{
		ID: "internet", Category: CategoryMoving, DaysFromMarriage: -14,
		ActionURL: "/checklists", ActionLabel: "手続きを確認",
		Title:             "インターネット回線の変更",
		Description:       "新居で工事が必要な場合は早めに予約。",
		Location:          "プロバイダー（電話 or Web）",
		RequiredDocuments: []string{},
		Conditions:        []Condition{ConditionMoving},
	},

	// ═══════════════════════════════════════════════════════
	// 勤務先
	// ═══════════════════════════════════════════════════════
	{
		ID: "company-marriage-report", Category: CategoryWork, DaysFromMarriage: 0, DeadlineDaysFromMarriage: days(14),
		ActionURL: "/checklists", ActionLabel: "手続きを確認",
		Title:             "勤務先への結婚届",
		Description:       "社内の結婚届を提出。福利厚生の確認も。",
		Location:          "勤務先の人事部",
		RequiredDocuments: []string{"社内結婚届"},
	},
	{
		ID: "dependent-application", Category: CategoryWork, DaysFromMarriage: 0, DeadlineDaysFromMarriage: days(30),
		ActionURL: "https://www.nenkin.go.jp/service/kounen/todokesho/hifuyousha/20141224.html", ActionLabel: "年金機構で確認",
		Title:             "扶養の申請",
		Description:       "配偶者を扶養に入れる場合の手続き。",
		Location:          "勤務先の人事部",
		RequiredDocuments: []string{"扶養届出書", "配偶者の所得証明"},
		Conditions:        []Condition{ConditionDependent},
	},
	{
		ID: "commuting-allowance", Category: CategoryWork, DaysFromMarriage: 0, DeadlineDaysFromMarriage: days(30),
		ActionURL: "/checklists", ActionLabel: "手続きを確認",
		Title:             "通勤手当の変更届",
		Description:       "住所変更に伴う通勤経路の届出。",
		Location:          "勤務先の人事部",
		RequiredDocuments: []string{"住所変更届"},
		Conditions:        []Condition{ConditionMoving},
	},

	// ═══════════════════════════════════════════════════════
	// 税金
	// ═══════════════════════════════════════════════════════
	{
		ID: "spouse-deduction-check", Category: CategoryTax, DaysFromMarriage: 30,
		ActionURL: "https://www.nta.go.jp/taxes/shiraberu/taxanswer/shotoku/1191.htm", ActionLabel: "国税庁で確認",
		Title:             "配偶者控除の確認",
		Description:       "年末調整で配偶者控除が適用されるか確認。",
		Location:          "勤務先",
		RequiredDocuments: []string{"配偶者の所得情報"},
		Tip:               "結婚した年の12月31日時点の状態で判定されます。",
	},
	{
		ID: "year-end-adjustment", Category: CategoryTax, DaysFromMarriage: 30,
		ActionURL: "https://www.nta.go.jp/taxes/tetsuzuki/shinsei/annai/gensen/annai/1648_01.htm", ActionLabel: "国税庁で確認",
		Title:             "年末調整書類の更新",
		Description:       "扶養控除等申告書の配偶者欄を更新。",
		Location:          "勤務先",
		RequiredDocuments: []string{"給与所得者の扶養控除等(異動)申告書"},
	},

	// ═══════════════════════════════════════════════════════
	// 給付金・支援制度
	// ═══════════════════════════════════════════════════════
	{
		ID: "marriage-subsidy", Category: CategoryBenefits, DaysFromMarriage: 0, DeadlineDaysFromMarriage: days(365),
		ActionURL: "/programs/marriage-subsidy", ActionLabel: "詳しく見る",
		Title:             "結婚新生活支援事業の申請",
		Description:       "住居費・引越費用を最大60万円補助。自治体による。",
		Location:          "市区町村窓口",
		RequiredDocuments: []string{"婚姻届受理証明書", "住民票", "所得証明書", "住居費の領収書等"},
		Tip:               "全自治体で実施されているわけではありません。予算がなくなり次第終了の場合も。",
	},
	{
		ID: "futari-passport", Category: CategoryBenefits, DaysFromMarriage: 0, DeadlineDaysFromMarriage: days(365),
		ActionURL: "https://www.futari-passport.metro.tokyo.lg.jp/", ActionLabel: "登録する",
		Title:             "TOKYOふたり結婚応援パスポートの登録",
		Description:       "協賛店での割引・特典が受けられます。",
		Location:          "アプリ or Web",
		RequiredDocuments: []string{},
		Tip:               "東京都在住でなくても、都内の協賛店でサービスを受けられます。",
	},
}

var definitionIndex = mustIndex(definitions)

func mustIndex(defs []Definition) map[string]int {
	idx := make(map[string]int, len(defs))
	for i, d := range defs {
		if _, dup := idx[d.ID]; dup {
			panic(fmt.Sprintf("timeline: duplicate definition id %q", d.ID))
		}
		idx[d.ID] = i
	}
	return idx
}

// Definitions returns a copy of the catalog in declaration order.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// DefinitionByID looks up a single catalog entry.
func DefinitionByID(id string) (Definition, bool) {
	i, ok := definitionIndex[id]
	if !ok {
		return Definition{}, false
	}
	return definitions[i], true
}

// KnownID reports whether id names a catalog entry.
func KnownID(id string) bool {
	_, ok := definitionIndex[id]
	return ok
}
