package assessment

import (
	"context"
	"strings"
	"time"

	"github.com/povarna/generative-ai-agents/legal-advisor/internal/models"
)

type mockCase struct {
	keywords   []string
	assessment models.Assessment
}

var mockCases = []mockCase{
	{
		keywords: []string{"位置情報", "個人情報"},
		assessment: models.Assessment{
			RiskLevel: models.RiskMedium,
			Summary:   "位置情報の第三者提供",
			Laws:      []string{"Personal Information Protection Act", "Telecommunications Business Act"},
			Reason:    "位置情報は個人を特定できる情報であり、収集時には目的を限定した開示が義務付けられています。また、広告配信事業者への提供は、提供先が適切な措置を講じているかの確認が必要です。",
			Recommendations: []string{
				"プライバシーポリシーに位置情報の収集目的を明記してください。",
				"提供先との間で個人情報の第三者提供に関する契約（NDA）を締結してください。",
				"ユーザーに対してオプトアウト機会を提供してください。",
			},
			InferenceTime: 15200 * time.Millisecond,
		},
	},
	{
		keywords: []string{"解約", "ダークパターン"},
		assessment: models.Assessment{
			RiskLevel: models.RiskHigh,
			Summary:   "解約導線のダークパターン",
			Laws:      []string{"Specified Commercial Transactions Act", "Consumer Contract Act"},
			Reason:    "解約を不当に困難にするUI（ダークパターン）が見られ、不当な顧客囲い込みとみなされるリスクがあります。",
			Recommendations: []string{
				"解約ボタンは視認性の高い位置に配置してください。",
				"解約を選択したユーザーには適切なサポートを提供してください。",
				"警告メッセージは1回までに制限することを推奨します。",
			},
			InferenceTime: 12800 * time.Millisecond,
		},
	},
	{
		keywords: []string{"アクセシビリティ", "代替テキスト", "画像"},
		assessment: models.Assessment{
			RiskLevel: models.RiskMedium,
			Summary:   "画像の代替テキスト不足",
			Laws:      []string{"Act on Elimination of Discrimination against Persons with Disabilities"},
			Reason:    "スクリーンリーダーで画像の内容が読み上げられないことは、情報伝達における不備として認定される可能性があります。",
			Recommendations: []string{
				"画像ボタンにはテキストバッジを設置してください。",
				"代替テキスト（alt属性）を必ず記載してください。",
				"JIS X 8341-3に準拠した実装を行ってください。",
			},
			InferenceTime: 14500 * time.Millisecond,
		},
	},
}

var mockFallback = models.Assessment{
	RiskLevel: models.RiskMedium,
	Laws:      []string{"Under Review"},
	Reason:    "入力内容に基づいて法的リスクを分析しています。より詳細な情報があれば、精度が向上します。",
	Recommendations: []string{
		"具体的な仕様を追加してください。",
		"ユーザーデータの取り扱いについて明記してください。",
		"法務担当者に確認することを推奨します。",
	},
	InferenceTime: 10 * time.Second,
}

// MockAssessor returns canned assessments chosen by keyword. It backs the
// demo mode that runs without any model credentials.
type MockAssessor struct{}

func NewMockAssessor() *MockAssessor {
	return &MockAssessor{}
}

func (m *MockAssessor) Assess(_ context.Context, req models.AssessmentRequest, _ string) (*models.Assessment, error) {
	if req.Text == "" {
		return nil, ErrEmptySpecification
	}

	result := mockFallback
	result.Summary = DefaultSummary(req.Text)

	for _, c := range mockCases {
		if containsAny(req.Text, c.keywords) {
			result = c.assessment
			break
		}
	}

	result.Laws = append([]string(nil), result.Laws...)
	result.Recommendations = append([]string(nil), result.Recommendations...)
	return &result, nil
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
