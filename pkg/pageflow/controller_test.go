package pageflow

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func serviceTestForm() *Form {
	return NewForm(
		Field{Name: "title", Label: "Title", Required: true},
		Field{Name: "description", Label: "Description", Required: true},
		Field{Name: "icon", Label: "Icon", File: true},
	)
}

func TestForm_Validate(t *testing.T) {
	testCases := map[string]struct {
		values        map[string]string
		expectMissing []string
	}{
		"all_required_filled": {
			values: map[string]string{"title": "Renovation", "description": "Full interior refits"},
		},
		"empty_form_lists_every_required_label": {
			expectMissing: []string{"Title", "Description"},
		},
		"whitespace_counts_as_empty": {
			values:        map[string]string{"title": "   ", "description": "ok"},
			expectMissing: []string{"Title"},
		},
		"optional_file_field_never_blocks": {
			values: map[string]string{"title": "Renovation", "description": "ok"},
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			form := serviceTestForm()
			for field, value := range tc.values {
				form.Set(field, value)
			}

			err := form.Validate()
			if len(tc.expectMissing) == 0 {
				require.NoError(t, err)
				return
			}

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tc.expectMissing, verr.Missing)
		})
	}
}

func TestForm_ValuesSplitsFilesFromFields(t *testing.T) {
	form := serviceTestForm()
	form.Set("title", "Renovation")
	form.Set("description", "Full interior refits")
	form.Set("icon", "/tmp/icon.png")

	require.Equal(t, map[string]any{"title": "Renovation", "description": "Full interior refits"}, form.Values())
	require.Equal(t, map[string]string{"icon": "/tmp/icon.png"}, form.FilePaths())
}

func TestController_SwitchResetsForm(t *testing.T) {
	page := NewController(serviceTestForm)
	page.SwitchTo(ModeCreate)
	page.Form().Set("title", "half-typed input")

	page.SwitchTo(ModeList)
	page.SwitchTo(ModeCreate)

	require.Empty(t, page.Form().Value("title"), "mode switch must not leak stale input")
}

func TestController_BeginEditSeedsForm(t *testing.T) {
	page := NewController(serviceTestForm)

	page.BeginEdit("svc-1", map[string]string{"title": "Roofing", "description": "Flat and pitched"})

	require.Equal(t, ModeEdit, page.Mode())
	require.Equal(t, "svc-1", page.EditingID())
	require.Equal(t, "Roofing", page.Form().Value("title"))
}

func TestController_LeavingEditDropsTarget(t *testing.T) {
	page := NewController(serviceTestForm)
	page.BeginEdit("svc-1", nil)

	page.SwitchTo(ModeList)

	require.Empty(t, page.EditingID())
}

func TestController_DeleteConfirmation(t *testing.T) {
	t.Run("confirm_without_arming_refuses", func(t *testing.T) {
		page := NewController(serviceTestForm)
		_, ok := page.ConfirmDelete()
		require.False(t, ok)
	})

	t.Run("disarm_cancels_pending_target", func(t *testing.T) {
		page := NewController(serviceTestForm)
		page.ArmDelete("svc-1")
		page.DisarmDelete()

		_, ok := page.ConfirmDelete()
		require.False(t, ok)
	})

	t.Run("confirm_hands_out_target_exactly_once", func(t *testing.T) {
		page := NewController(serviceTestForm)
		page.ArmDelete("svc-1")

		id, ok := page.ConfirmDelete()
		require.True(t, ok)
		require.Equal(t, "svc-1", id)

		_, ok = page.ConfirmDelete()
		require.False(t, ok)
	})

	t.Run("rearming_replaces_target", func(t *testing.T) {
		page := NewController(serviceTestForm)
		page.ArmDelete("svc-1")
		page.ArmDelete("svc-2")

		id, ok := page.ConfirmDelete()
		require.True(t, ok)
		require.Equal(t, "svc-2", id)
	})
}
