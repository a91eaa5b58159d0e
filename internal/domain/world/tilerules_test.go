package world

import "testing"

func TestValidTilePlacement(t *testing.T) {
	cases := []struct {
		name       string
		kind       string
		neighbours map[string]string
		want       bool
	}{
		{"middle connects to middle", "platform_middle", map[string]string{"left": "platform_middle"}, true},
		{"left cannot touch left", "platform_left", map[string]string{"left": "platform_left"}, false},
		{"support above platform", "support", map[string]string{"above": "platform_middle"}, true},
		{"support above hazard rejected", "support", map[string]string{"above": "spikes"}, false},
		{"unknown kind rejected", "lava_fountain", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidTilePlacement(tc.kind, tc.neighbours); got != tc.want {
				t.Fatalf("ValidTilePlacement(%q,%v)=%v want %v", tc.kind, tc.neighbours, got, tc.want)
			}
		})
	}
}

func TestTileVariant_UsesBiomeTable(t *testing.T) {
	r := NewRNG(7, "tilerules-test")
	seen := map[string]bool{}
	for i := 0; i < 40; i++ {
		seen[TileVariant("platform_middle", BiomeForest, r)] = true
	}
	for v := range seen {
		switch v {
		case "grass_middle", "moss_middle", "wood_middle":
		default:
			t.Fatalf("variant %q not in the forest table", v)
		}
	}
}

func TestTileVariant_UnknownKindPassesThrough(t *testing.T) {
	r := NewRNG(7, "tilerules-test")
	if got := TileVariant("portal", BiomeIce, r); got != "portal" {
		t.Fatalf("got %q want passthrough", got)
	}
}

func TestRuleFor(t *testing.T) {
	rule, ok := RuleFor("spikes")
	if !ok || rule.Category != CategoryHazard || rule.MinSpacing != 2 {
		t.Fatalf("unexpected rule %+v ok=%v", rule, ok)
	}
}
