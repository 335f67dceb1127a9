package sexpr

import (
	"testing"

	"github.com/sergev/plc/analyzer"
	"github.com/sergev/plc/parser"
)

func TestValueString(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want string
	}{
		{"Atom", Atom("x"), "x"},
		{"EmptyList", List(), "()"},
		{"Flat", List(Atom("+"), Atom("1"), Atom("2")), "(+ 1 2)"},
		{"Nested", List(Atom("a"), List(Atom("b"), List()), Atom("c")), "(a (b ()) c)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.v.String(); got != c.want {
				t.Fatalf("String() = %s, want %s", got, c.want)
			}
		})
	}
	if Atom("x").IsList() || !List().IsList() {
		t.Fatalf("IsList does not distinguish atoms from lists")
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"", ""},
		{
			"LET x : INTEGER = 5; PRINT(x);",
			"(let x INTEGER 5)\n(expr (call PRINT x))\n",
		},
		{"LET s : STRING", "(let s STRING)\n"},
		{"x = (1 + 2) * 3", "(set x (* (group (+ 1 2)) 3))\n"},
		{"1 - 2 - 3", "(expr (- (- 1 2) 3))\n"},
		{"PRINT(2.5, 10.0, \"a\\nb\", TRUE)", "(expr (call PRINT 2.5 10.0 \"a\\nb\" TRUE))\n"},
		{
			"IF a == b THEN PRINT(a); ELSE END",
			"(if (== a b) (then (expr (call PRINT a))) (else))\n",
		},
		{
			"WHILE FALSE DO x = 1; END",
			"(while FALSE (do (set x 1)))\n",
		},
	}
	for _, c := range cases {
		tree, err := parser.ParseString(c.src)
		if err != nil {
			t.Fatalf("ParseString(%q): %v", c.src, err)
		}
		if got := Format(tree); got != c.want {
			t.Fatalf("Format(%q) =\n%s\nwant\n%s", c.src, got, c.want)
		}
	}
}

func TestFormatTyped(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{
			"LET x : INTEGER = 5; PRINT(x);",
			"(let x INTEGER (the INTEGER 5))\n" +
				"(expr (the VOID (call PRINT (the INTEGER x))))\n",
		},
		{
			"LET d : DECIMAL; d = 1 + 2.0;",
			"(let d DECIMAL)\n" +
				"(set d (the DECIMAL (+ (the INTEGER 1) (the DECIMAL 2.0))))\n",
		},
		{
			"WHILE (TRUE) DO END",
			"(while (the BOOLEAN (group (the BOOLEAN TRUE))) (do))\n",
		},
		{
			"IF 1 == 1 THEN ELSE PRINT(\"no\"); END",
			"(if (the BOOLEAN (== (the INTEGER 1) (the INTEGER 1))) (then) " +
				"(else (expr (the VOID (call PRINT (the STRING \"no\"))))))\n",
		},
	}
	for _, c := range cases {
		tree, err := parser.ParseString(c.src)
		if err != nil {
			t.Fatalf("ParseString(%q): %v", c.src, err)
		}
		checked, err := analyzer.Analyze(tree, nil)
		if err != nil {
			t.Fatalf("Analyze(%q): %v", c.src, err)
		}
		if got := FormatTyped(checked); got != c.want {
			t.Fatalf("FormatTyped(%q) =\n%s\nwant\n%s", c.src, got, c.want)
		}
	}
}
