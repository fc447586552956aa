package msgout

import "testing"

func TestKindsAreDistinctAndNonEmpty(t *testing.T) {
	kinds := []Kind{
		ExplorePwdAsync, ExploreParentsAsync, Refresh, ClearScreen, Quit, Debug,
		Call, CallSilently, CallLua, CallLuaSilently, LuaEval, LuaEvalSilently,
		Enque, EnableMouse, DisableMouse, ToggleMouse, StartFifo, StopFifo,
		ToggleFifo, PrintPwdAndQuit, PrintFocusPathAndQuit, PrintSelectionAndQuit,
		PrintResultAndQuit, PrintAppStateAndQuit,
	}

	seen := map[Kind]bool{}
	for _, k := range kinds {
		if k == "" {
			t.Fatalf("empty Kind constant found")
		}
		if seen[k] {
			t.Fatalf("duplicate Kind value: %s", k)
		}
		seen[k] = true
	}
}

func TestMsgOut_CarriesCallFields(t *testing.T) {
	m := MsgOut{Kind: Call, Command: "vim", Args: []string{"-R", "file.txt"}}
	if m.Kind != Call {
		t.Fatalf("Kind = %s, want %s", m.Kind, Call)
	}
	if m.Command != "vim" || len(m.Args) != 2 {
		t.Fatalf("Command/Args not preserved: %+v", m)
	}
}

func TestMsgOut_CarriesPrintPaths(t *testing.T) {
	m := MsgOut{Kind: PrintFocusPathAndQuit, Path: "/home/user/file.txt"}
	if m.Path != "/home/user/file.txt" {
		t.Fatalf("Path = %q, want preserved value", m.Path)
	}
}
