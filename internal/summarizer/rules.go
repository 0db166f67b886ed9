package summarizer

import "regexp"

// Category groups boilerplate removal rules by what they strip.
type Category string

const (
	CategoryByline    Category = "byline"
	CategoryCopyright Category = "copyright"
	CategoryBracket   Category = "bracket"
	CategoryPromo     Category = "promo"
	CategoryCredit    Category = "credit"
	CategoryShare     Category = "share"
	CategorySubscribe Category = "subscribe"
	CategoryChrome    Category = "chrome"
	CategoryDomain    Category = "domain"
	CategorySymbol    Category = "symbol"
)

// Rule is a single pattern substitution of the normalization catalog.
type Rule struct {
	Category    Category
	Pattern     *regexp.Regexp
	Replacement string
}

// span is a lazy gap that never crosses a sentence terminator or a line break,
// so paired markers ("구독 ... 알림") cannot swallow unrelated sentences.
const span = `[^.!?\n]*?`

func strip(c Category, pattern string) Rule {
	return Rule{Category: c, Pattern: regexp.MustCompile(pattern)}
}

// defaultRules is evaluated top to bottom; order matters where patterns overlap
// (e.g. "메뉴 ... 닫기" must run before the bare "닫기").
var defaultRules = []Rule{
	strip(CategoryByline, `[가-힣]*\s*기자[^@\n]{0,20}?@[\w.-]+\.[a-z]{2,}`),
	strip(CategoryByline, `[\w.%+-]+@[\w.-]+\.[a-zA-Z]{2,}`),
	strip(CategoryByline, `https?://\S+`),
	strip(CategoryByline, `[가-힣]{1,4}\s*기자(?:\s|$)`),

	strip(CategoryCopyright, `저작권`+span+`금지`),
	strip(CategoryCopyright, `무단`+span+`금지`),

	strip(CategoryBracket, `\[[^\]\n]*앵커[^\]\n]*\]`),
	strip(CategoryBracket, `\[[^\]\n]*리포트[^\]\n]*\]`),
	strip(CategoryBracket, `【[^】\n]*】`),

	strip(CategoryPromo, `jebo23`+span+`친구\s*추가`),
	strip(CategoryPromo, `라인\s*앱에서`+span+`친구\s*추가`),
	strip(CategoryPromo, `좋아요\d+응원해요\d+후속\s*원해요\d+`),
	strip(CategoryPromo, `ADVERTISEMENT`),
	strip(CategoryPromo, `광고`),
	strip(CategoryPromo, `\bAD\b`),
	strip(CategoryPromo, `앱\s*다운로드`),
	strip(CategoryPromo, `모바일\s*앱`),

	strip(CategoryCredit, `사진\s*=\s*[^\n.]*`),
	strip(CategoryCredit, `출처\s*:\s*[^\n.]*`),
	strip(CategoryCredit, `제공\s*=\s*[^\n.]*`),
	strip(CategoryCredit, `이미지\s*=\s*[^\n.]*`),
	strip(CategoryCredit, `사진제공\s*[^\n.]*`),
	strip(CategoryCredit, `자료사진\s*[^\n.]*`),
	strip(CategoryCredit, `(?:연합뉴스|뉴시스)\s*자료사진`),
	strip(CategoryCredit, `게티이미지\s*뱅크`),
	strip(CategoryCredit, `(?:\bAFP|로이터|\bEPA|\bAP)\s*연합뉴스`),
	strip(CategoryCredit, `(?:사진|이미지)\s*출처`),

	strip(CategoryShare, `(?:페이스북|트위터|카카오톡|네이버)`+span+`공유(?:하기)?`),
	strip(CategoryShare, `공유하기`),

	strip(CategorySubscribe, `구독`+span+`알림`),
	strip(CategorySubscribe, `팔로우`+span+`하기`),
	strip(CategorySubscribe, `더\s*많은`+span+`뉴스`),
	strip(CategorySubscribe, `뉴스\s*더보기`),

	strip(CategoryChrome, `메뉴`+span+`닫기`),
	strip(CategoryChrome, `닫기`),
	strip(CategoryChrome, `제보는`+span+`카카오톡`),
	strip(CategoryChrome, `제보`+span+`접수`),
	strip(CategoryChrome, `(?:뉴스|독자|시청자)\s*제보`),
	strip(CategoryChrome, `취재\s*요청`),
	strip(CategoryChrome, `문의`+span+`연락처`),
	strip(CategoryChrome, `홈페이지`+span+`바로가기`),
	strip(CategoryChrome, `(?:모바일|PC)`+span+`버전`),
	strip(CategoryChrome, `전체`+span+`메뉴`),
	strip(CategoryChrome, `로그인`+span+`회원가입`),
	strip(CategoryChrome, `회원`+span+`서비스`),
	strip(CategoryChrome, `이용약관`+span+`개인정보`),
	strip(CategoryChrome, `개인정보`+span+`처리방침`),
	strip(CategoryChrome, `저작권`+span+`정책`),
	strip(CategoryChrome, `청소년`+span+`보호정책`),

	strip(CategoryDomain, `\.co\.kr\b`),
	strip(CategoryDomain, `\.kr\b`),
	strip(CategoryDomain, `\.com\b`),
	strip(CategoryDomain, `www\.`),
	strip(CategoryDomain, `https?://`),

	{Category: CategorySymbol, Pattern: regexp.MustCompile(`[^\p{L}\p{N}_\s.,!?]`), Replacement: " "},
}

// DefaultRules returns a copy of the built-in rule catalog in evaluation order.
func DefaultRules() []Rule {
	out := make([]Rule, len(defaultRules))
	copy(out, defaultRules)
	return out
}

// RulesFor returns the built-in rules of the given categories, preserving order.
func RulesFor(categories ...Category) []Rule {
	want := make(map[Category]struct{}, len(categories))
	for _, c := range categories {
		want[c] = struct{}{}
	}
	var out []Rule
	for _, r := range defaultRules {
		if _, ok := want[r.Category]; ok {
			out = append(out, r)
		}
	}
	return out
}
