package models

import "testing"

func TestParseObjectKindVariants(t *testing.T) {
	cases := map[string]ObjectKind{
		"wall":            KindWall,
		"Wall":            KindWall,
		"moving_obstacle": KindMovingObstacle,
		"MovingObstacle":  KindMovingObstacle,
		"KEY":             KindKey,
	}
	for name, want := range cases {
		kind, err := ParseObjectKind(name)
		if err != nil {
			t.Fatalf("ParseObjectKind(%q): %v", name, err)
		}
		if kind != want {
			t.Errorf("ParseObjectKind(%q) = %v, want %v", name, kind, want)
		}
	}
	if _, err := ParseObjectKind("lava"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestCapabilityTable(t *testing.T) {
	if !CapabilitiesOf(KindWall).BlocksMovement {
		t.Error("wall must block movement")
	}
	if !CapabilitiesOf(KindKey).IsCarryable {
		t.Error("key must be carryable")
	}
	if CapabilitiesOf(KindGoal).BlocksMovement {
		t.Error("goal must not block movement")
	}
	if !CapabilitiesOf(KindGoal).IsGoalLike {
		t.Error("goal must be goal-like")
	}
	if !CapabilitiesOf(KindDoor).IsOpenable {
		t.Error("door must be openable")
	}
	if CapabilitiesOf(KindFloor) != (Capabilities{}) {
		t.Error("floor must have no capabilities")
	}
}
