package planning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/planning-service/internal/domain"
)

func TestNormalizeTechnicianList(t *testing.T) {
	raw := RawTicket{
		ID:    1,
		Title: "Remplacement chaudière",
		Color: "#FF5733",
		Technicians: []domain.AssignedTechnician{
			{ID: 10, Name: "Alice", Color: "#111111"},
			{ID: 20, Name: "Bruno", Color: "#222222", IsPrimary: true},
		},
	}

	ticket := Normalize(raw)

	require.Len(t, ticket.Technicians, 2)
	require.NotNil(t, ticket.TechnicianID)
	// The flagged primary wins, not the first entry.
	assert.Equal(t, int64(20), *ticket.TechnicianID)
	assert.Equal(t, "Bruno", ticket.TechnicianName)
	assert.Equal(t, "#222222", ticket.TechnicianColor)
}

func TestNormalizeListWithoutPrimaryFlag(t *testing.T) {
	raw := RawTicket{
		ID: 2,
		Technicians: []domain.AssignedTechnician{
			{ID: 10, Name: "Alice", Color: "#111111"},
			{ID: 20, Name: "Bruno", Color: "#222222"},
		},
	}

	ticket := Normalize(raw)

	require.NotNil(t, ticket.TechnicianID)
	assert.Equal(t, int64(10), *ticket.TechnicianID)
	assert.Equal(t, "Alice", ticket.TechnicianName)
}

func TestNormalizeLegacyShape(t *testing.T) {
	techID := int64(7)
	raw := RawTicket{
		ID:           3,
		Title:        "Entretien clim",
		Color:        "#AABBCC",
		TechnicianID: &techID,
		Technician:   &domain.Technician{ID: 7, Name: "Chloé", Color: "#333333", Active: true},
	}

	ticket := Normalize(raw)

	require.Len(t, ticket.Technicians, 1)
	assert.True(t, ticket.Technicians[0].IsPrimary)
	assert.Equal(t, int64(7), ticket.Technicians[0].ID)
	assert.Equal(t, "Chloé", ticket.TechnicianName)
	assert.Equal(t, "#333333", ticket.TechnicianColor)
}

func TestNormalizeWithoutTechnicianData(t *testing.T) {
	ticket := Normalize(RawTicket{ID: 4})

	assert.Nil(t, ticket.TechnicianID)
	assert.Equal(t, domain.UnassignedName, ticket.TechnicianName)
	assert.Equal(t, domain.UnassignedColor, ticket.TechnicianColor)
	assert.Empty(t, ticket.Technicians)
}

func TestNormalizeDefaults(t *testing.T) {
	ticket := Normalize(RawTicket{ID: 5})

	assert.Equal(t, DefaultTitle, ticket.Title)
	assert.Equal(t, DefaultColor, ticket.Color)
	assert.Nil(t, ticket.Date)
	assert.Nil(t, ticket.Hour)
}

func TestNormalizeIdempotent(t *testing.T) {
	date := "2024-01-15"
	hour := 9
	techID := int64(7)
	inputs := []RawTicket{
		{ID: 1, Title: "A", Color: "#FF5733", Date: &date, Hour: &hour, Technicians: []domain.AssignedTechnician{
			{ID: 10, Name: "Alice", Color: "#111111"},
			{ID: 20, Name: "Bruno", Color: "#222222", IsPrimary: true},
		}},
		{ID: 2, TechnicianID: &techID, Technician: &domain.Technician{ID: 7, Name: "Chloé", Color: "#333333"}},
		{ID: 3},
	}

	for _, raw := range inputs {
		once := Normalize(raw)
		twice := NormalizeTicket(once)
		assert.Equal(t, once, twice, "ticket %d", raw.ID)
	}
}

func TestNormalizeLegacyMirrorInvariant(t *testing.T) {
	// Whatever the input shape, the legacy fields always match the primary.
	techID := int64(3)
	inputs := []RawTicket{
		{ID: 1, Technicians: []domain.AssignedTechnician{{ID: 1, Name: "A", Color: "#000001"}}},
		{ID: 2, Technicians: []domain.AssignedTechnician{
			{ID: 1, Name: "A", Color: "#000001"},
			{ID: 2, Name: "B", Color: "#000002", IsPrimary: true},
			{ID: 3, Name: "C", Color: "#000003"},
		}},
		{ID: 3, TechnicianID: &techID, Technician: &domain.Technician{ID: 3, Name: "C", Color: "#000003"}},
	}

	for _, raw := range inputs {
		ticket := Normalize(raw)
		primary, ok := ticket.Primary()
		require.True(t, ok)
		require.NotNil(t, ticket.TechnicianID)
		assert.Equal(t, primary.ID, *ticket.TechnicianID)
		assert.Equal(t, primary.Name, ticket.TechnicianName)
		assert.Equal(t, primary.Color, ticket.TechnicianColor)
	}
}
