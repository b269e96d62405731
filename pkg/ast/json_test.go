package ast

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestProgramJSONKeysAreAlphabetical(t *testing.T) {
	program := Prog(
		Expr(Let("inc", Fn([]string{"x"}, Expr(Bin("+", ID("x"), Int(1)))))),
		NewComment("// done"),
	)
	data, err := json.Marshal(program)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"statements":[{"type":"Expression","value":{"name":{"name":"inc","type":"Identifier"},"type":"Let","value":{"body":{"statements":[{"type":"Expression","value":{"left":{"name":"x","type":"Identifier"},"operator":"+","right":{"type":"Integer","value":"1"},"type":"Infix"}}],"type":"Block"},"parameters":[{"name":"x","type":"Identifier"}],"type":"Function"}}},{"type":"Comment","value":"// done"}],"type":"Program"}`
	if string(data) != want {
		t.Fatalf("unexpected json:\n%s\nwant:\n%s", data, want)
	}
}

func TestProgramJSONDoesNotEscapeOperators(t *testing.T) {
	program := Prog(Expr(Bin(">", Int(2), Int(1))), Expr(Compose(ID("f"), ID("g"))))
	data, err := JSON(program, "  ")
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"operator": ">"`) {
		t.Fatalf("operator escaped: %s", data)
	}
}

func TestIfWithoutElseRendersNullAlternative(t *testing.T) {
	tree := Tree(If(Bool(true), Blk(Expr(Int(1))), nil)).(map[string]any)
	if alt, ok := tree["alternative"]; !ok || alt != nil {
		t.Fatalf("expected null alternative, got %#v", tree["alternative"])
	}
	if tree["type"] != "If" {
		t.Fatalf("unexpected type %v", tree["type"])
	}
}

func TestMutableLetNodeType(t *testing.T) {
	if got := LetMut("x", Int(1)).NodeType(); got != NodeMutableLet {
		t.Fatalf("NodeType = %s, want %s", got, NodeMutableLet)
	}
	if got := Let("x", Int(1)).NodeType(); got != NodeLet {
		t.Fatalf("NodeType = %s, want %s", got, NodeLet)
	}
}

func TestDictAndThreadTrees(t *testing.T) {
	dict := Tree(Dict(Entry(Str("a"), Int(1)))).(map[string]any)
	items := dict["items"].([]any)
	entry := items[0].(map[string]any)
	if entry["key"].(map[string]any)["value"] != "a" {
		t.Fatalf("unexpected dict entry %#v", entry)
	}
	thread := Tree(Thread(Int(1), ID("f"), CallName("g", Int(2)))).(map[string]any)
	if len(thread["functions"].([]any)) != 2 {
		t.Fatalf("unexpected thread tree %#v", thread)
	}
}
