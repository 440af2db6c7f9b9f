package lexer

import (
	"fmt"
	"strings"
	"testing"
)

// generateTypicalScript builds a realistic mix of declarations, literals
// and operators.
func generateTypicalScript(lines int) string {
	patterns := []string{
		"const limit = 0x7FFF_FFFF; // max",
		"let greeting = 'h\\u00e9llo, world\\n';",
		"var ratio = total / count * 1.5e-3;",
		"if (a?.b ?? c >= 10) { return x >>> 2; }",
		"/* block */ let café = \"naïve\" + '\\x41';",
	}
	var b strings.Builder
	for i := 0; i < lines; i++ {
		b.WriteString(patterns[i%len(patterns)])
		b.WriteByte('\n')
	}
	return b.String()
}

// BenchmarkLexerCore measures pure tokenization across syntax complexity
// levels, reusing one lexer through Init.
func BenchmarkLexerCore(b *testing.B) {
	scenarios := map[string]string{
		"simple":    "let x = 5",
		"operators": "a >>>= b ?? c?.d ** 2 !== e",
		"strings":   `'plain' "esc\tA\u{1F600}"`,
		"realistic": generateTypicalScript(50),
	}

	for name, input := range scenarios {
		b.Run(name, func(b *testing.B) {
			lexer := NewLexer("")
			b.SetBytes(int64(len(input)))
			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				lexer.Init(input)
				for {
					tok, err := lexer.Advance()
					if err != nil {
						b.Fatal(err)
					}
					if tok.Type == EOF {
						break
					}
				}
			}
		})
	}
}

// BenchmarkTelemetryModes measures observability overhead.
func BenchmarkTelemetryModes(b *testing.B) {
	input := generateTypicalScript(50)
	modes := map[string][]LexerOpt{
		"off":    nil,
		"basic":  {WithTelemetryBasic()},
		"timing": {WithTelemetryTiming()},
	}

	for name, opts := range modes {
		b.Run(name, func(b *testing.B) {
			lexer := NewLexer("", opts...)
			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				lexer.Init(input)
				if _, err := lexer.Tokenize(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkLexerScaling checks tokenization stays linear in input size.
func BenchmarkLexerScaling(b *testing.B) {
	for _, lines := range []int{10, 100, 1000} {
		input := generateTypicalScript(lines)
		b.Run(fmt.Sprintf("lines=%d", lines), func(b *testing.B) {
			b.SetBytes(int64(len(input)))
			for i := 0; i < b.N; i++ {
				if _, err := NewLexer(input).Tokenize(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func TestTypicalScriptLexes(t *testing.T) {
	if _, err := NewLexer(generateTypicalScript(5)).Tokenize(); err != nil {
		t.Fatalf("benchmark input must lex cleanly: %v", err)
	}
}
