package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcflow/internal/graph"
	"mcflow/internal/simplex"
)

func int64p(v int64) *int64 { return &v }
func intp(v int) *int       { return &v }

func sampleRequest() *ProblemRequest {
	return &ProblemRequest{
		NodeCount: 4,
		Arcs: []ArcSpec{
			{Source: 0, Target: 1, Upper: int64p(5), Cost: 3},
			{Source: 1, Target: 3, Upper: int64p(5), Cost: 7},
			{Source: 0, Target: 2, Upper: int64p(5), Cost: 2},
			{Source: 2, Target: 3, Lower: 1, Cost: 3},
		},
		Supplies: []SupplySpec{
			{Node: 0, Supply: 5},
			{Node: 3, Supply: -5},
		},
	}
}

func TestToProblemBuildsGraphAndMaps(t *testing.T) {
	p := ToProblem(sampleRequest())

	require.Equal(t, 4, p.Graph.NodeNum())
	require.Equal(t, 4, p.Graph.ArcNum())
	assert.Equal(t, 0, p.Graph.Source(0))
	assert.Equal(t, 1, p.Graph.Target(0))

	assert.Equal(t, int64(5), p.Upper.Get(0))
	assert.Equal(t, graph.Uncapacitated, p.Upper.Get(3), "nil upper is uncapacitated")
	assert.Equal(t, int64(1), p.Lower.Get(3))
	assert.Equal(t, int64(7), p.Cost.Get(1))

	assert.False(t, p.UseST)
	assert.Equal(t, int64(5), p.Supply.Get(0))
	assert.Equal(t, int64(-5), p.Supply.Get(3))
	assert.Equal(t, int64(0), p.Supply.Get(1))
	assert.Equal(t, simplex.EQ, p.Type)
}

func TestToProblemSTPair(t *testing.T) {
	req := sampleRequest()
	req.Supplies = nil
	req.Source = intp(0)
	req.Target = intp(3)
	req.Quantity = 5

	p := ToProblem(req)
	assert.True(t, p.UseST)
	assert.Equal(t, 0, p.STSource)
	assert.Equal(t, 3, p.STTarget)
	assert.Equal(t, int64(5), p.STKValue)
	assert.Nil(t, p.Supply)
}

func TestBindAndSolve(t *testing.T) {
	p := ToProblem(sampleRequest())

	ns := p.Bind(simplex.NewNetworkSimplex(p.Graph))
	require.True(t, ns.Run())
	// Дешёвый маршрут 0->2->3 берёт всё: 5*(2+3) = 25.
	assert.Equal(t, int64(25), ns.TotalCost())

	resp := FromSolution(ns, p.Graph)
	assert.Equal(t, "optimal", resp.Status)
	assert.True(t, resp.Optimal)
	assert.Equal(t, int64(25), resp.TotalCost)
	require.Len(t, resp.Flows, 4)
	assert.Equal(t, int64(5), resp.Flows[2].Flow)
	assert.Equal(t, int64(5), resp.Flows[3].Flow)
	require.Len(t, resp.Potentials, 4)
}

func TestParseProblemType(t *testing.T) {
	tests := []struct {
		in      string
		want    simplex.ProblemType
		wantErr bool
	}{
		{"", simplex.EQ, false},
		{"EQ", simplex.EQ, false},
		{"GEQ", simplex.GEQ, false},
		{"CARRY_SUPPLIES", simplex.GEQ, false},
		{"LEQ", simplex.LEQ, false},
		{"SATISFY_DEMANDS", simplex.LEQ, false},
		{"MAX", simplex.EQ, true},
	}
	for _, tt := range tests {
		got, err := ParseProblemType(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParsePivotRule(t *testing.T) {
	got, err := ParsePivotRule("", simplex.BlockSearch)
	require.NoError(t, err)
	assert.Equal(t, simplex.BlockSearch, got)

	got, err = ParsePivotRule("altering_list", simplex.BlockSearch)
	require.NoError(t, err)
	assert.Equal(t, simplex.AlteringList, got)

	_, err = ParsePivotRule("dantzig", simplex.BlockSearch)
	assert.Error(t, err)
}

func TestCanonicalDeterminism(t *testing.T) {
	a := Canonical(sampleRequest())
	b := Canonical(sampleRequest())
	assert.Equal(t, a, b)

	// Любое изменение задачи меняет каноническую форму.
	changedCost := sampleRequest()
	changedCost.Arcs[0].Cost = 4
	assert.NotEqual(t, a, Canonical(changedCost))

	changedForm := sampleRequest()
	changedForm.ProblemType = "GEQ"
	assert.NotEqual(t, a, Canonical(changedForm))

	uncapped := sampleRequest()
	uncapped.Arcs[0].Upper = nil
	assert.NotEqual(t, a, Canonical(uncapped))

	// Пустой и явный EQ эквивалентны.
	explicit := sampleRequest()
	explicit.ProblemType = "EQ"
	assert.Equal(t, a, Canonical(explicit))
}
