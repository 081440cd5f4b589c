package newsletter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/briefwise-labs/briefwise-cli/internal/core/domain"
)

func TestNormalise_PlainText(t *testing.T) {
	n := New()

	got := n.Normalise("Hello\n\nWorld", domain.FormatText)
	assert.Equal(t, "Hello\nWorld", got)
}

func TestNormalise_HTML(t *testing.T) {
	n := New()

	body := `<html><head><style>p{color:red}</style></head>` +
		`<body><p>Hello &amp; welcome</p><img src="banner.png"><p>World</p></body></html>`

	got := n.Normalise(body, domain.FormatHTML)
	assert.Equal(t, "Hello & welcome\nWorld", got)
	assert.NotContains(t, got, "banner.png")
}

func TestNormalise_Idempotent(t *testing.T) {
	n := New()

	inputs := []struct {
		name   string
		body   string
		format domain.BodyFormat
	}{
		{"plain", "Hello  world\n\n\n---\n|pipe| text", domain.FormatText},
		{"html", "<div>First</div><br><div>Second -- part</div>", domain.FormatHTML},
		{"links", "Read [the post](https://example.com/p) now", domain.FormatText},
	}

	for _, tc := range inputs {
		t.Run(tc.name, func(t *testing.T) {
			once := n.Normalise(tc.body, tc.format)
			twice := n.Normalise(once, domain.FormatText)
			assert.Equal(t, once, twice)
		})
	}
}

func TestNormalise_MarkdownLinks(t *testing.T) {
	n := New()

	body := `<p>Check [this article](https://example.com/article) today</p>`
	got := n.Normalise(body, domain.FormatHTML)

	assert.Contains(t, got, "this article")
	assert.NotContains(t, got, "https://example.com/article")
	assert.NotContains(t, got, "[")
	assert.NotContains(t, got, "(")
}

func TestNormalise_RuleLines(t *testing.T) {
	n := New()

	body := "Header\n----\n----\nBody text\n|--|--\n---"
	got := n.Normalise(body, domain.FormatText)

	assert.Equal(t, "Header\nBody text", got)
}

func TestNormalise_StrayPipes(t *testing.T) {
	n := New()

	got := n.Normalise("a | b | c", domain.FormatText)
	assert.Equal(t, "a b c", got)
}

func TestNormalise_MarkerTruncation(t *testing.T) {
	n := NewWithMarker("In other news")

	body := "Main story here.\nIn other news\nSponsored junk."
	got := n.Normalise(body, domain.FormatText)

	assert.Equal(t, "Main story here.", got)
}

func TestNormalise_EmptyMarkerKeepsAll(t *testing.T) {
	n := NewWithMarker("")

	body := "Main story.\nUnsubscribe here."
	got := n.Normalise(body, domain.FormatText)

	assert.Contains(t, got, "Unsubscribe")
}

func TestNormalise_InvisibleCharacters(t *testing.T) {
	n := New()

	got := n.Normalise("Hel\u200blo\u200c wor\ufeffld", domain.FormatText)
	assert.Equal(t, "Hello world", got)
}

func TestNormalise_MalformedFragmentsPassThrough(t *testing.T) {
	n := New()

	// An unclosed bracket matches no rewrite pattern and survives.
	got := n.Normalise("see [broken link(http", domain.FormatText)
	assert.Equal(t, "see [broken link(http", got)
}
