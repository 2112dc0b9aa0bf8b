package models

import "testing"

func TestOrientationRotationRoundTrip(t *testing.T) {
	for _, start := range []Orientation{North, East, South, West} {
		o := start
		for i := 0; i < 4; i++ {
			o = o.RotateLeft()
		}
		if o != start {
			t.Errorf("four left turns from %v ended at %v", start, o)
		}
		if start.RotateLeft().RotateRight() != start {
			t.Errorf("left then right from %v did not return to start", start)
		}
	}
}

func TestOrientationDeltas(t *testing.T) {
	cases := []struct {
		orientation Orientation
		forward     Position
		right       Position
	}{
		{North, Position{Row: -1, Col: 0}, Position{Row: 0, Col: 1}},
		{East, Position{Row: 0, Col: 1}, Position{Row: 1, Col: 0}},
		{South, Position{Row: 1, Col: 0}, Position{Row: 0, Col: -1}},
		{West, Position{Row: 0, Col: -1}, Position{Row: -1, Col: 0}},
	}
	for _, tc := range cases {
		if got := tc.orientation.Forward(); got != tc.forward {
			t.Errorf("%v forward = %+v, want %+v", tc.orientation, got, tc.forward)
		}
		if got := tc.orientation.Right(); got != tc.right {
			t.Errorf("%v right = %+v, want %+v", tc.orientation, got, tc.right)
		}
		back := tc.orientation.Backward()
		want := Position{Row: -tc.forward.Row, Col: -tc.forward.Col}
		if back != want {
			t.Errorf("%v backward = %+v, want %+v", tc.orientation, back, want)
		}
	}
}

func TestActionDelta(t *testing.T) {
	// Facing east, forward is +col and left is -row.
	if delta, moves := ActionMoveForward.Delta(East); !moves || delta != (Position{Row: 0, Col: 1}) {
		t.Errorf("MOVE_FORWARD facing east = %+v, %v", delta, moves)
	}
	if delta, moves := ActionMoveLeft.Delta(East); !moves || delta != (Position{Row: -1, Col: 0}) {
		t.Errorf("MOVE_LEFT facing east = %+v, %v", delta, moves)
	}
	if _, moves := ActionTurnLeft.Delta(East); moves {
		t.Error("TURN_LEFT should not move the agent")
	}
	if _, moves := ActionActuate.Delta(East); moves {
		t.Error("ACTUATE should not move the agent")
	}
}

func TestParseActionCaseInsensitive(t *testing.T) {
	for _, name := range []string{"pick_n_drop", "PICK_N_DROP", "Pick_N_Drop"} {
		action, err := ParseAction(name)
		if err != nil {
			t.Fatalf("ParseAction(%q): %v", name, err)
		}
		if action != ActionPickNDrop {
			t.Errorf("ParseAction(%q) = %v", name, action)
		}
	}
	if _, err := ParseAction("levitate"); err == nil {
		t.Error("expected error for unknown action")
	}
}
