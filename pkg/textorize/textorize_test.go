package textorize_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/yaklabco/textorize/pkg/textorize"
)

func TestTextorize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "paragraph", input: "<p>plain text</p>", want: "\nplain text\n"},
		{name: "div wrapper", input: "<div>plain text with no html</div>", want: "plain text with no html"},
		{name: "self-closing div", input: "<div/>plain text with no html", want: "plain text with no html"},
		{name: "no markup", input: "1. plain text with no html", want: "1. plain text with no html"},
		{name: "empty div", input: "2. plain text <div></div>with no html", want: "2. plain text with no html"},
		{
			name:  "unclosed p inside div",
			input: "3. plain text <div><p>Hello Hoi</div>with no html",
			want:  "3. plain text \nHello Hoiwith no html",
		},
		{
			name:  "unclosed p inside div with trailing space",
			input: "4. plain text <div><p>Hello Hoi</div> with no html",
			want:  "4. plain text \nHello Hoi with no html",
		},
		{name: "mismatched closers", input: "<p>hoi<p>ook</div></P><p>deef</p>", want: "\nhoi\nook\n\ndeef\n"},
		{name: "nested paragraphs", input: "<p>hoi<p>ook</p>la</p>", want: "\nhoi\nook\nla\n"},
		{
			name:  "list in paragraph",
			input: "<p><ul><li>item 1</li><li>item 2</li></ul></p>",
			want:  "\n\n\n\t- item 1\n\t- item 2\n\n",
		},
		{name: "trailing lt", input: "1. aaa<", want: "1. aaa<"},
		{name: "unterminated tag", input: "2. aaa<a", want: "2. aaa<a"},
		{name: "abandoned tag then lt", input: "3. aaa<a<", want: "3. aaa<a<"},
		{name: "repeated abandoned tags", input: "4. a<a<a", want: "4. a<a<a"},
		{name: "abandoned tag then p", input: "5. aaa<a<p>", want: "5. aaa<a\n"},
		{name: "digit tag then p", input: "aaa<1<p>", want: "aaa<1\n"},
		{name: "br", input: "pre <br>post", want: "pre \npost"},
		{name: "self-closing br", input: "pre <br/>post", want: "pre \npost"},
		{name: "br with closer", input: "pre <br>post</br>", want: "pre \npost"},
		{name: "hr", input: "pre <hr>post", want: "pre \npost"},
		{name: "named nbsp", input: "pre&nbsp;post", want: "pre\u00a0post"},
		{name: "numeric nbsp", input: "pre&#160;post", want: "pre\u00a0post"},
		{
			name:  "comparison without markup",
			input: "A this is no html: 1 < 3 and 1 > 3",
			want:  "A this is no html: 1 < 3 and 1 > 3",
		},
		{
			name:  "comparison in paragraph",
			input: "B this is html: <p> 1 < 3 and 1 > 3</p>",
			want:  "B this is html: \n1 < 3 and 1 > 3\n",
		},
		{
			name:  "comparison in spaced paragraph",
			input: "C this is html: <p   > 1 < 3 and 1 > 3</p>",
			want:  "C this is html: \n1 < 3 and 1 > 3\n",
		},
		{name: "lt in quoted attribute", input: `1.<p class="c n\<">a</p>`, want: "1.\na\n"},
		{name: "lt in quoted attribute with br", input: `2.<p class="c n\<">b<br/>a</p>`, want: "2.\nb\na\n"},
		{name: "script single quotes", input: "1. hoi<script>var x = '<>';window.close();</script>", want: "1. hoi"},
		{name: "script mixed quotes", input: "2. hoi<script>var x = '\"<>';window.close();</script>", want: "2. hoi"},
		{name: "script nested quotes", input: "3. hoi<script>var x = \"'<>'\";window.close();</script>", want: "3. hoi"},
		{name: "script line comment", input: "<script>// it's</script><p>after this</p>", want: "\nafter this\n"},
		{name: "invalid utf-8 in element", input: "<b>a\xff  b</b>", want: "a\xff b"},
		{name: "script wrong closer", input: "4. hoi<script>var x = \"'<>'\";window.close();</s>", want: "4. hoi"},
		{
			name:  "script unterminated",
			input: "5. hoi<script>var x = \" '<>' \";window.close();<p>a<p/>",
			want:  "5. hoi\na\n",
		},
		{
			name:  "script unterminated with lt",
			input: "6. hoi<script>var x = \" '<>' \";if(x < 1) window.close();<p>a<p/>",
			want:  "6. hoi\na\n",
		},
		{
			name:  "script unterminated with gt",
			input: "7. hoi<script>var x = \" '<>' \";if(x > 1) window.close();<p>a<p/>",
			want:  "7. hoi\na\n",
		},
		{
			name:  "style with escapes",
			input: "1. hoi<style>#\\~\\!\\@\\$\\%\\^\\&\\*\\(\\)\\_\\+-\\=\\,\\.\\/\\'\\;\\:\\\"\\?\\>\\<\\[\\]\\\\\\{\\}\\|\\`\\#{</style><p>a</p>",
			want:  "1. hoi\na\n",
		},
		{name: "style", input: "2. hoi<style>.c{'a:1'};</style><p>a</p>", want: "2. hoi\na\n"},
		{name: "style with lt", input: "3. hoi<style>.c < p{'a:1'};</style><p>a</p>", want: "3. hoi\na\n"},
		{name: "style with gt", input: "4. hoi<style>.c > p{'a:1'};</style><p>a</p>", want: "4. hoi\na\n"},
		{name: "style wrong closer", input: "5. hoi<style>.c > p{'a:1'};</s> a", want: "5. hoi a"},
		{name: "style wrong closer near end", input: "6. hoi<style>.c > p{'a:1'};</s><p>a</p>", want: "6. hoi\n\n"},
		{name: "inline element", input: "1. X<b>-bld</b>", want: "1. X-bld"},
		{name: "text after paragraph", input: "1. <p>Hello</p>    How are you? ", want: "1. \nHello\nHow are you? "},
		{name: "li trailing space", input: "li 1. <li>Y   </li>", want: "li 1. \n\t- Y "},
		{name: "li leading space", input: "li 2. <li>   X</li>", want: "li 2. \n\t- X"},
		{name: "li with inline", input: "li 3. <li>X <b>bld</bld></li>", want: "li 3. \n\t- X bld"},
		{
			name:  "nested lists",
			input: "ul 1. <ul><li>lvl 1<ul><li>lvl2</li></ul></li></ul>",
			want:  "ul 1. \n\n\t- lvl 1\n\t\t- lvl2\n",
		},
		{name: "entities", input: "1. <b>&lt;word&gt;</b>", want: "1. <word>"},
		{name: "unterminated entities", input: "2. <b>&ltword&gt</b>", want: "2. &ltword&gt"},
		{name: "spaced entity", input: "<b>a &gt   ; b</b>", want: "a > b"},
		{name: "text after closed paragraph", input: "1. <p>hi</p>\r\n\r\n\r\n        ok?", want: "1. \nhi\nok?"},
		{name: "text after inline", input: "2. <b>hi</b>\r\n\r\n\r\n        ok?", want: "2. hi ok?"},
		{name: "text after inline in div", input: "3. <div><b>hi</b>\r\n\r\n\r\n        ok?</div>", want: "3. hi ok?"},
		{name: "collapse in div", input: "4. <div>a <a>hi</a>  ok?</div>", want: "4. a hi ok?"},
		{
			name:  "pre",
			input: "pre 1. <pre>\n code \r\n\r\n\r\n        ok?</pre>",
			want:  "pre 1.  code \r\n\r\n\r\n        ok?",
		},
		{
			name:  "pre with span",
			input: "pre 2. <pre>\n <span>code \r\n\r\n\r\n</span>        ok?</pre>",
			want:  "pre 2.  code \r\n\r\n\r\n        ok?",
		},
		{
			name:  "nested pre",
			input: "pre 3. <pre>\n<pre> <span>code \r\n\r\n\r\n</span></pre>        ok?</pre>",
			want:  "pre 3.  code \r\n\r\n\r\n        ok?",
		},
		{
			name:  "invalid entity before tag",
			input: "1. invalid entity <b>&hellip<i>word</i></b>",
			want:  "1. invalid entity &hellipword",
		},
		{
			name:  "invalid entity before space",
			input: "2. invalid entity <b>&hellip    <i>word</i></b>",
			want:  "2. invalid entity &hellip word",
		},
		{
			name:  "valid and invalid entity",
			input: "3. invalid entity <b>&hellip;    <i>&hellipword</i></b>",
			want:  "3. invalid entity … &hellipword",
		},
		{name: "stray closer", input: "a</p>b", want: "a\nb"},
		{name: "empty", input: "", want: ""},
		{name: "whitespace only", input: " \r\n\t ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, textorize.Textorize(tt.input))
		})
	}
}

func TestTextorize_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"<p>plain text</p>",
		"\nhello \n",
		"\nhello  hoi \n",
		" \nhello hoi \n ",
		" \nhello        hoi \n ",
		"hello ik ben >  3  & 7 < 3      hoi \n",
		"hello<p> ik ben >  3  & 7 < 3      hoi \n",
		"<ul><li>one</li><li>two &amp; three</li></ul>",
		"<p>1 &lt; 2</p><pre>\n  keep\n   this</pre>",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			first := textorize.Textorize(input)
			second := textorize.Textorize(first)
			assert.Equal(t, first, second)
			assert.Equal(t, first, textorize.Textorize(html.EscapeString(second)))
		})
	}
}

func TestTextorize_HTMLFile(t *testing.T) {
	t.Parallel()

	data, err := os.ReadFile(filepath.Join("testdata", "input_html_01.html"))
	require.NoError(t, err)

	first := textorize.Textorize(string(data))
	second := textorize.Textorize(html.EscapeString(first))

	assert.Equal(t, first, second)
	assert.NotContains(t, first, "<p")
	assert.NotContains(t, first, "function(")
	assert.NotContains(t, first, "font-family")
	assert.Contains(t, first, "\t- Scanner")
	assert.Contains(t, first, "Fish & Chips")
}

func TestTextorize_LongTagName(t *testing.T) {
	t.Parallel()

	input := "<t" + strings.Repeat("h", 1024*1024-4) + ">text"
	assert.Equal(t, "text", textorize.Textorize(input))
}

func TestConverter_WithWriter(t *testing.T) {
	t.Parallel()

	w := &recordingWriter{}
	conv := textorize.New(textorize.WithWriter(w))
	out := conv.Convert("<p>a</p><br/>b&amp;")

	assert.Empty(t, out)
	assert.Equal(t, []string{"open:<p>", "text:a", "close:</p>", "open:<br/>", "text:b", "text:&amp;"}, w.calls)
}

func TestConverter_NilWriterKeepsDefault(t *testing.T) {
	t.Parallel()

	conv := textorize.New(textorize.WithWriter(nil))
	assert.Equal(t, "\na\n", conv.Convert("<p>a</p>"))
}

type recordingWriter struct {
	calls []string
}

func (w *recordingWriter) WriteOpen(_ *textorize.RenderContext, tok textorize.Token) {
	w.calls = append(w.calls, "open:"+tok.Text)
}

func (w *recordingWriter) WriteClose(_ *textorize.RenderContext, tok textorize.Token) {
	w.calls = append(w.calls, "close:"+tok.Text)
}

func (w *recordingWriter) WriteText(_ *textorize.RenderContext, tok textorize.Token) {
	w.calls = append(w.calls, "text:"+tok.Text)
}

func BenchmarkTextorize(b *testing.B) {
	data, err := os.ReadFile(filepath.Join("testdata", "input_html_01.html"))
	if err != nil {
		b.Fatal(err)
	}
	input := string(data)

	b.SetBytes(int64(len(input)))
	b.ReportAllocs()
	for b.Loop() {
		_ = textorize.Textorize(input)
	}
}
