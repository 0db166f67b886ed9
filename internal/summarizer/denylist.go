package summarizer

import "strings"

// DenyCategory groups stop words by origin.
type DenyCategory int

const (
	DenyParticles DenyCategory = iota
	DenyFunction
	DenyConnective
	DenyNewsProcess
	DenyTemporal
	DenyPromo
	DenySection
	DenyCredit
	DenyChrome
)

// Stage selects which deny categories apply to a consumer.
type Stage int

const (
	StageScoring Stage = iota
	StageKeywords
)

// Entries are lower-case; terms are case-folded before lookup.
var denyWords = map[DenyCategory][]string{
	DenyParticles: {
		"이", "그", "저", "것", "수", "등", "및", "의", "를", "을", "가", "은", "는",
		"에", "으로", "로", "와", "과", "하고",
	},
	DenyFunction: {
		"이것", "그것", "저것", "이런", "그런", "저런", "이렇게", "그렇게", "저렇게",
		"때문", "경우", "때문에", "하지만", "그러나", "그런데", "또한", "그리고",
		"이다", "있다", "없다", "한다", "된다", "이며", "이고", "에서", "에게",
	},
	// Only filtered from keywords; they still count toward sentence scores.
	DenyConnective: {
		"또는", "따라서", "위해", "통해", "대한", "위한", "있는", "없는", "아니다",
		"것이", "것은", "것을",
	},
	DenyNewsProcess: {
		"기자", "뉴스", "기사", "보도", "발표", "관련", "대해", "한국", "우리나라",
	},
	DenyTemporal: {
		"오늘", "어제", "내일", "올해", "지난해", "내년", "지난", "다음", "현재", "최근",
		"앞으로", "향후", "이후", "이전", "당시", "지금",
	},
	DenyPromo: {
		"jebo23", "라인", "앱에서", "친구", "추가", "좋아요", "응원해요", "후속", "원해요",
		"advertisement", "광고", "ad", "공유", "공유하기", "구독", "알림", "팔로우",
		"다운로드", "모바일", "페이스북", "트위터", "카카오톡", "네이버", "더보기",
		"yna", "krc", "co", "kr",
	},
	DenySection: {
		"문화", "연예",
	},
	DenyCredit: {
		"사진", "출처", "제공", "이미지", "자료사진", "사진제공", "이미지출처", "사진출처",
		"게티이미지", "뱅크", "afp", "로이터", "뉴시스", "epa", "ap",
	},
	DenyChrome: {
		"닫기", "제보는", "제보", "뉴스제보", "독자제보", "시청자제보", "취재요청", "취재",
		"홈페이지", "바로가기", "로그인", "회원가입", "회원", "서비스", "이용약관",
		"개인정보", "처리방침", "저작권", "정책", "청소년", "보호정책", "메뉴", "전체",
		"www", "http", "https", "com", "버전", "pc", "문의", "연락처", "접수",
	},
}

var stageCategories = map[Stage][]DenyCategory{
	StageScoring: {DenyFunction, DenyNewsProcess, DenyTemporal, DenyPromo},
	StageKeywords: {
		DenyParticles, DenyFunction, DenyConnective, DenyNewsProcess, DenyTemporal,
		DenyPromo, DenySection, DenyCredit, DenyChrome,
	},
}

// sentenceMarkers reject a segmented fragment when contained anywhere in it.
var sentenceMarkers = []string{
	"사진=", "출처:", "제공=", "이미지=", "자료사진", "게티이미지", "AFP", "로이터",
	"닫기", "제보는", "카카오톡", "뉴스제보", "독자제보", "시청자제보", "취재요청",
	"홈페이지", "바로가기", "로그인", "회원가입", ".kr", ".com",
}

// bylineMarker rejects a fragment when it shows up near the fragment start.
const (
	bylineMarker = "기자"
	bylineWindow = 10
)

// StopWords returns the deny set for a stage as a fresh map.
func StopWords(stage Stage) map[string]struct{} {
	m := make(map[string]struct{})
	for _, c := range stageCategories[stage] {
		for _, w := range denyWords[c] {
			m[strings.ToLower(w)] = struct{}{}
		}
	}
	return m
}

// DenyWords returns the entries of a single category.
func DenyWords(c DenyCategory) []string {
	return append([]string(nil), denyWords[c]...)
}

func hasSentenceMarker(fragment string) bool {
	for _, m := range sentenceMarkers {
		if strings.Contains(fragment, m) {
			return true
		}
	}
	runes := []rune(fragment)
	if len(runes) > bylineWindow {
		runes = runes[:bylineWindow]
	}
	return strings.Contains(string(runes), bylineMarker)
}
