package generator

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sergev/plc/analyzer"
	"github.com/sergev/plc/lang"
	"github.com/sergev/plc/parser"
	"github.com/sergev/plc/typed"
)

func mustAnalyze(t *testing.T, src string) *typed.Source {
	t.Helper()
	tree, err := parser.ParseString(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	out, err := analyzer.Analyze(tree, nil)
	if err != nil {
		t.Fatalf("analyze %q: %v", src, err)
	}
	return out
}

func TestGenerateRoundTrip(t *testing.T) {
	got := String(mustAnalyze(t, "LET x : INTEGER = 5; PRINT(x);"), DefaultOptions())
	want := `public class Main {

    public static void main(String[] args) {
        int x = 5;
        System.out.println(x);
    }

}
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("generated program mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateEmptySource(t *testing.T) {
	got := String(mustAnalyze(t, ""), DefaultOptions())
	want := `public class Main {

    public static void main(String[] args) {
    }

}
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("empty program mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateOptions(t *testing.T) {
	got := String(mustAnalyze(t, "PRINT(1);"), Options{ClassName: "Hello", Indent: 2})
	want := `public class Hello {

  public static void main(String[] args) {
    System.out.println(1);
  }

}
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}

	got = String(mustAnalyze(t, ""), Options{Indent: -3})
	if !strings.HasPrefix(got, "public class Main {\n") {
		t.Fatalf("empty class name should default to Main, got:\n%s", got)
	}
	if !strings.Contains(got, "\npublic static void main") {
		t.Fatalf("negative indent should clamp to zero, got:\n%s", got)
	}
}

func TestGenerateStatements(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"LET b : BOOLEAN;", "boolean b;\n"},
		{"LET d : DECIMAL = 1;", "double d = 1;\n"},
		{"LET s : STRING = \"hi\";", "String s = \"hi\";\n"},
		{"LET o : ANY = 2.5;", "Object o = 2.5;\n"},
		{"LET x : INTEGER; x = 1 + 2 * 3;", "int x;\nx = 1 + 2 * 3;\n"},
		{"PRINT((1 + 2) * 3);", "System.out.println((1 + 2) * 3);\n"},
		{"PRINT(1 == 2);", "System.out.println(1 == 2);\n"},
		{"PRINT(\"a\" + 1);", "System.out.println(\"a\" + 1);\n"},
		{
			"IF TRUE THEN PRINT(1); END",
			"if (true) {\n    System.out.println(1);\n}\n",
		},
		{
			"IF FALSE THEN ELSE PRINT(2); END",
			"if (false) {\n} else {\n    System.out.println(2);\n}\n",
		},
		{
			"LET i : INTEGER = 0; WHILE i != 3 DO i = i + 1; IF i == 2 THEN PRINT(i); END END",
			"int i = 0;\n" +
				"while (i != 3) {\n" +
				"    i = i + 1;\n" +
				"    if (i == 2) {\n" +
				"        System.out.println(i);\n" +
				"    }\n" +
				"}\n",
		},
	}
	for _, c := range cases {
		var buf bytes.Buffer
		if err := New(&buf, DefaultOptions()).GenerateStatements(mustAnalyze(t, c.src).Stmts); err != nil {
			t.Fatalf("GenerateStatements(%q): %v", c.src, err)
		}
		if diff := cmp.Diff(c.want, buf.String()); diff != "" {
			t.Fatalf("GenerateStatements(%q) mismatch (-want +got):\n%s", c.src, diff)
		}
	}
}

func TestLiterals(t *testing.T) {
	cases := []struct {
		value interface{}
		typ   lang.Type
		want  string
	}{
		{true, lang.Boolean, "true"},
		{false, lang.Boolean, "false"},
		{int32(0), lang.Integer, "0"},
		{int32(-17), lang.Integer, "-17"},
		{int32(math.MaxInt32), lang.Integer, "2147483647"},
		{float64(10), lang.Decimal, "10.0"},
		{float64(-0.5), lang.Decimal, "-0.5"},
		{float64(3.25), lang.Decimal, "3.25"},
		{float64(1e21), lang.Decimal, "1e+21"},
		{"", lang.String, `""`},
		{"say \"hi\"", lang.String, `"say \"hi\""`},
		{"a\\b", lang.String, `"a\\b"`},
		{"line\nnext\ttab\r\b", lang.String, `"line\nnext\ttab\r\b"`},
	}
	for _, c := range cases {
		got := Expr(&typed.LiteralExpr{Value: c.value, Typ: c.typ})
		if got != c.want {
			t.Fatalf("Expr(%#v) = %s, want %s", c.value, got, c.want)
		}
	}
}

func TestCustomFunction(t *testing.T) {
	sqrt := lang.Function{Name: "SQRT", Java: "Math.sqrt", Params: []lang.Type{lang.Decimal}, Result: lang.Decimal}
	call := &typed.FunctionExpr{
		Func: sqrt,
		Args: []typed.Expr{&typed.LiteralExpr{Value: int32(2), Typ: lang.Integer}},
	}
	if got := Expr(call); got != "Math.sqrt(2)" {
		t.Fatalf("Expr(call) = %s", got)
	}

	pair := lang.Function{Name: "MAX", Java: "Math.max", Params: []lang.Type{lang.Integer, lang.Integer}, Result: lang.Integer}
	call = &typed.FunctionExpr{
		Func: pair,
		Args: []typed.Expr{
			&typed.VariableExpr{Name: "a", Typ: lang.Integer},
			&typed.VariableExpr{Name: "b", Typ: lang.Integer},
		},
	}
	if got := Expr(call); got != "Math.max(a, b)" {
		t.Fatalf("Expr(call) = %s", got)
	}
}

type failingWriter struct {
	writes int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	w.writes++
	return 0, errors.New("disk full")
}

func TestGenerateWriteError(t *testing.T) {
	w := &failingWriter{}
	err := New(w, DefaultOptions()).Generate(mustAnalyze(t, "PRINT(1); PRINT(2);"))
	if err == nil || err.Error() != "disk full" {
		t.Fatalf("expected write error, got %v", err)
	}
	if w.writes != 1 {
		t.Fatalf("generator kept writing after an error: %d writes", w.writes)
	}
}
