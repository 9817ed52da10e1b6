package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesdesk/backend/internal/application/analysis"
)

func TestSessionSendAndResolve(t *testing.T) {
	session := NewSession()

	placeholderID, err := session.Send("muestra el inventario")
	require.NoError(t, err)
	require.True(t, session.Pending())

	turns := session.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, RoleUser, turns[0].Role)
	assert.Equal(t, "muestra el inventario", turns[0].Content)
	assert.Equal(t, RoleAssistant, turns[1].Role)
	assert.True(t, turns[1].Loading)
	assert.Equal(t, placeholderID, turns[1].ID)

	err = session.Resolve(&Envelope{
		Response:   "3 product(s) on hand.",
		WorkflowID: string(WorkflowListInventory),
	})
	require.NoError(t, err)
	assert.False(t, session.Pending())

	turns = session.Turns()
	require.Len(t, turns, 2, "resolve must replace the placeholder, not append")
	assert.Equal(t, placeholderID, turns[1].ID)
	assert.False(t, turns[1].Loading)
	assert.Equal(t, "3 product(s) on hand.", turns[1].Content)
	assert.Equal(t, string(WorkflowListInventory), turns[1].WorkflowID)
}

func TestSessionRejectsSendWhilePending(t *testing.T) {
	session := NewSession()

	_, err := session.Send("primer mensaje")
	require.NoError(t, err)

	_, err = session.Send("segundo mensaje")
	require.Error(t, err)

	turns := session.Turns()
	assert.Len(t, turns, 2, "rejected send must not touch the log")

	require.NoError(t, session.Fail("request failed"))
	_, err = session.Send("tercer mensaje")
	require.NoError(t, err)
}

func TestSessionFailReplacesPlaceholder(t *testing.T) {
	session := NewSession()

	placeholderID, err := session.Send("vende 99 laptops")
	require.NoError(t, err)

	require.NoError(t, session.Fail("Insufficient stock for \"Laptop HP\": requested 99, available 2"))

	turns := session.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, placeholderID, turns[1].ID)
	assert.False(t, turns[1].Loading)
	assert.Contains(t, turns[1].Content, "Insufficient stock")
	assert.False(t, session.Pending())
}

func TestSessionResolveWithoutPending(t *testing.T) {
	session := NewSession()

	err := session.Resolve(&Envelope{Response: "hola"})
	require.Error(t, err)
}

func TestSessionChartSuppression(t *testing.T) {
	legacyCharts := []analysis.Visualization{
		analysis.NewBarChart("Stock", []string{"a"}, []float64{1}),
	}

	t.Run("data visualizations suppress legacy charts", func(t *testing.T) {
		session := NewSession()
		_, err := session.Send("analiza el inventario")
		require.NoError(t, err)

		data := &analysis.InventoryAnalysisResponse{
			Visualizations: []analysis.Visualization{
				analysis.NewPieChart("Status", []string{"normal"}, []float64{3}),
			},
		}
		require.NoError(t, session.Resolve(&Envelope{Response: "ok", Data: data, Charts: legacyCharts}))

		turns := session.Turns()
		assert.Nil(t, turns[1].Charts)
		assert.Same(t, data, turns[1].Data)
	})

	t.Run("legacy charts kept when data has none", func(t *testing.T) {
		session := NewSession()
		_, err := session.Send("analiza el inventario")
		require.NoError(t, err)

		require.NoError(t, session.Resolve(&Envelope{Response: "ok", Charts: legacyCharts}))

		turns := session.Turns()
		assert.Len(t, turns[1].Charts, 1)
	})
}
