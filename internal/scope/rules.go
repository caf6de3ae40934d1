package scope

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	ErrEmptyPattern  = errors.New("rule pattern is empty")
	ErrEmptyCategory = errors.New("rule category is empty")
	ErrEmptyMessage  = errors.New("rule message is empty")
	ErrDuplicateRule = errors.New("duplicate rule pattern")
	ErrInvalidRegex  = errors.New("invalid rule regex")
	ErrEmptyKeywords = errors.New("in-scope category has no keywords")
)

// Rule rejects any input containing Pattern. When Regex is set the pattern is
// a regular expression evaluated case-insensitively instead of a literal.
type Rule struct {
	Pattern  string `json:"pattern" yaml:"pattern"`
	Category string `json:"category" yaml:"category"`
	Message  string `json:"message" yaml:"message"`
	Regex    bool   `json:"regex,omitempty" yaml:"regex,omitempty"`
}

// Category is an in-scope topic and the keywords used to suggest it.
type Category struct {
	Name     string   `json:"name" yaml:"name"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// Table is the classifier configuration. Declaration order of both slices is
// significant: the first matching rule is reported and suggestion ties go to
// the earlier category.
type Table struct {
	OutOfScope []Rule
	InScope    []Category
}

// RuleGroup is the category-keyed form of a rule set: one message shared by
// every keyword of a category.
type RuleGroup struct {
	Category string   `yaml:"category"`
	Message  string   `yaml:"message"`
	Keywords []string `yaml:"keywords"`
}

// Validate checks every rule and category. It reports the first problem found.
func (t Table) Validate() error {
	seen := make(map[string]bool, len(t.OutOfScope))
	for i, rule := range t.OutOfScope {
		if rule.Pattern == "" {
			return fmt.Errorf("rule %d: %w", i, ErrEmptyPattern)
		}
		if rule.Category == "" {
			return fmt.Errorf("rule %q: %w", rule.Pattern, ErrEmptyCategory)
		}
		if rule.Message == "" {
			return fmt.Errorf("rule %q: %w", rule.Pattern, ErrEmptyMessage)
		}
		if seen[rule.Pattern] {
			return fmt.Errorf("rule %q: %w", rule.Pattern, ErrDuplicateRule)
		}
		seen[rule.Pattern] = true

		if rule.Regex {
			if _, err := regexp.Compile(rule.Pattern); err != nil {
				return fmt.Errorf("rule %q: %w: %v", rule.Pattern, ErrInvalidRegex, err)
			}
		}
	}

	for i, category := range t.InScope {
		if category.Name == "" {
			return fmt.Errorf("in-scope category %d: %w", i, ErrEmptyCategory)
		}
		if len(category.Keywords) == 0 {
			return fmt.Errorf("in-scope category %q: %w", category.Name, ErrEmptyKeywords)
		}
		for _, keyword := range category.Keywords {
			if keyword == "" {
				return fmt.Errorf("in-scope category %q: %w", category.Name, ErrEmptyPattern)
			}
		}
	}

	return nil
}

// CategoryTable flattens category-keyed groups into keyword rules, keeping
// group order first and keyword order second.
func CategoryTable(groups []RuleGroup, inScope []Category) Table {
	var rules []Rule
	for _, group := range groups {
		for _, keyword := range group.Keywords {
			rules = append(rules, Rule{
				Pattern:  keyword,
				Category: group.Category,
				Message:  group.Message,
			})
		}
	}

	return Table{
		OutOfScope: rules,
		InScope:    inScope,
	}
}

const (
	ossMessage         = "OSSライセンスに関するご質問は、専門の知的財産弁護士にご相談ください。"
	programmingMessage = "プログラミング技術に関するご質問は、技術コミュニティやドキュメントをご参照ください。"
)

// DefaultTable is the production rule set.
func DefaultTable() Table {
	return Table{
		OutOfScope: []Rule{
			// OSS licensing
			{Pattern: "ライセンス", Category: "OSS License", Message: ossMessage},
			{Pattern: "GPL", Category: "OSS License", Message: ossMessage},
			{Pattern: "MIT", Category: "OSS License", Message: ossMessage},
			{Pattern: "Apache", Category: "OSS License", Message: ossMessage},
			{Pattern: "BSD", Category: "OSS License", Message: ossMessage},

			// Programming
			{Pattern: "React", Category: "Programming", Message: programmingMessage},
			{Pattern: "Docker", Category: "Programming", Message: programmingMessage},
			{Pattern: "Kubernetes", Category: "Programming", Message: programmingMessage},
			{Pattern: "Python", Category: "Programming", Message: programmingMessage},
			{Pattern: "JavaScript", Category: "Programming", Message: programmingMessage},

			// AI ethics
			{Pattern: "AI判定", Category: "AI Ethics", Message: "AIによる自動判定の倫理的側面については、AI倫理専門家にご相談ください。"},
			{Pattern: "顔認証", Category: "AI Ethics", Message: "生体認証の倫理的側面については、AI倫理専門家にご相談ください。"},
			{Pattern: "アルゴリズム差別", Category: "AI Ethics", Message: "アルゴリズムの倫理的側面については、AI倫理専門家にご相談ください。"},
			{Pattern: "バイアス", Category: "AI Ethics", Message: "AIバイアスの倫理的側面については、AI倫理専門家にご相談ください。"},
		},
		InScope: DefaultCategories(),
	}
}

// DefaultCategories lists the supported legal areas.
func DefaultCategories() []Category {
	return []Category{
		{Name: "個人情報", Keywords: []string{"個人情報保護法", "プライバシーポリシー", "同意取得"}},
		{Name: "消費者保護", Keywords: []string{"ダークパターン", "解約", "利用規約", "不当条項"}},
		{Name: "アクセシビリティ", Keywords: []string{"WCAG", "障害者差別解消法", "音声読み上げ"}},
		{Name: "金融規制", Keywords: []string{"電子決済", "暗号資産", "資金決済法"}},
		{Name: "契約", Keywords: []string{"SaaS", "利用規約", "信義則"}},
	}
}

// LegacyTable is the older category-keyed rule set, kept as an alternate
// configuration. It is broader than DefaultTable.
func LegacyTable() Table {
	groups := []RuleGroup{
		{
			Category: "OSS",
			Message: "本システムはOSSライセンスに関する診断には対応していません。\n\n" +
				"OSSライセンスの法的相談は、以下をご検討ください:\n" +
				"• 専門の法律事務所への相談\n" +
				"• OSS利用ガイドラインの確認\n" +
				"• ライセンス互換性チェックツールの使用",
			Keywords: []string{
				"GPL", "MIT", "Apache", "BSD", "ライセンス違反",
				"オープンソース", "OSS", "LGPL", "MPL",
				"ソースコード公開", "再配布", "派生物",
			},
		},
		{
			Category: "AI倫理",
			Message: "本システムはAI倫理に関する診断には対応していません。\n\n" +
				"AI倫理の検討は、以下の観点から別途行うことを推奨します:\n" +
				"• 社内倫理委員会の設置\n" +
				"• AI倫理ガイドラインの策定\n" +
				"• 第三者機関による倫理審査",
			Keywords: []string{
				"AI倫理", "機械学習倫理", "バイアス", "公平性",
				"アルゴリズム差別", "透明性", "説明可能性",
				"AI偏見", "倫理的AI",
			},
		},
		{
			Category: "技術実装",
			Message: "本システムは技術的な実装詳細には対応していません。\n\n" +
				"本システムは法的リスクの診断に特化しています。\n" +
				"技術実装については、以下をご検討ください:\n" +
				"• セキュリティ専門家への相談\n" +
				"• 技術コンサルタントの活用\n" +
				"• 開発チームとの協議",
			Keywords: []string{
				"SQL", "Python", "JavaScript", "React", "Vue",
				"サーバー構築", "AWS", "Azure", "GCP",
				"Docker", "Kubernetes", "API実装",
				"データベース設計", "セキュリティ実装",
				"暗号化アルゴリズム", "認証実装",
			},
		},
	}

	return CategoryTable(groups, DefaultCategories())
}
