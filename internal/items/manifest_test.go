package items

import "testing"

func TestNewItemDefinitionValidation(t *testing.T) {
	cases := []struct {
		name    string
		params  ItemDefinitionParams
		wantErr bool
	}{
		{
			name:   "valid",
			params: ItemDefinitionParams{ID: "ore", Name: "Ore", StackSize: 5, Tags: []ItemTag{TagHaulable}},
		},
		{
			name:    "missing id",
			params:  ItemDefinitionParams{Name: "Ore", StackSize: 5},
			wantErr: true,
		},
		{
			name:    "missing name",
			params:  ItemDefinitionParams{ID: "ore", StackSize: 5},
			wantErr: true,
		},
		{
			name:    "zero stack size",
			params:  ItemDefinitionParams{ID: "ore", Name: "Ore"},
			wantErr: true,
		},
		{
			name:    "empty tag",
			params:  ItemDefinitionParams{ID: "ore", Name: "Ore", StackSize: 5, Tags: []ItemTag{""}},
			wantErr: true,
		},
		{
			name:    "duplicate tag",
			params:  ItemDefinitionParams{ID: "ore", Name: "Ore", StackSize: 5, Tags: []ItemTag{TagHaulable, TagHaulable}},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewItemDefinition(tc.params)
			if tc.wantErr && err == nil {
				t.Fatal("expected an error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestManifestRejectsDuplicates(t *testing.T) {
	def, err := NewItemDefinition(ItemDefinitionParams{ID: "ore", Name: "Ore", StackSize: 5})
	if err != nil {
		t.Fatalf("define: %v", err)
	}
	if _, err := NewManifest([]ItemDefinition{def, def}); err == nil {
		t.Fatal("expected duplicate definitions to be rejected")
	}
}

func TestManifestLookups(t *testing.T) {
	manifest := DefaultManifest()

	if size := manifest.StackSize(ItemBerry); size != 10 {
		t.Fatalf("StackSize(berry) = %d, want 10", size)
	}
	if size := manifest.StackSize("obsidian"); size != 0 {
		t.Fatalf("StackSize(unknown) = %d, want 0", size)
	}

	if !manifest.HasTag(ItemTimber, TagBuildingMaterial) {
		t.Fatal("timber should carry building_material")
	}
	if manifest.HasTag(ItemBerry, TagBuildingMaterial) {
		t.Fatal("berry should not carry building_material")
	}

	members := manifest.MatchingItems(TagBuildingMaterial)
	want := []ItemID{ItemClayBrick, ItemStoneBlock, ItemTimber}
	if len(members) != len(want) {
		t.Fatalf("MatchingItems(building_material) = %v, want %v", members, want)
	}
	for i := range want {
		if members[i] != want[i] {
			t.Fatalf("MatchingItems(building_material)[%d] = %q, want %q", i, members[i], want[i])
		}
	}

	if got := manifest.MatchingItems("unknown_tag"); got != nil {
		t.Fatalf("MatchingItems(unknown) = %v, want nil", got)
	}
}

func TestManifestNilSafety(t *testing.T) {
	var manifest *Manifest
	if _, ok := manifest.Definition(ItemBerry); ok {
		t.Fatal("nil manifest returned a definition")
	}
	if got := manifest.MatchingItems(TagFood); got != nil {
		t.Fatalf("nil manifest returned members %v", got)
	}
	if got := manifest.Definitions(); got != nil {
		t.Fatalf("nil manifest returned definitions %v", got)
	}
}
