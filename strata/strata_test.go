package strata_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/averden/sumtab"
	"github.com/averden/sumtab/strata"
)

// countTable is a minimal construction function: one row holding the
// stratum's row count.
func countTable(ds strata.Dataset) (sumtab.StyledTable, error) {
	return sumtab.StyledTable{
		Body: sumtab.Table{
			Columns: []string{"characteristic", "value"},
			Rows:    [][]string{{"N", strconv.Itoa(ds.NumRows())}},
		},
	}, nil
}

func trialData() strata.Dataset {
	return strata.Dataset{
		Columns: []string{"arm", "site", "age"},
		Rows: [][]string{
			{"B", "x", "61"},
			{"A", "x", "47"},
			{"B", "y", "58"},
			{"A", "y", "52"},
			{"B", "x", "49"},
			{"A", "x", "55"},
		},
	}
}

func TestParseMode(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input   string
		want    strata.Mode
		wantErr require.ErrorAssertionFunc
	}{
		"merge":   {input: "merge", want: strata.Merge, wantErr: require.NoError},
		"stack":   {input: "stack", want: strata.Stack, wantErr: require.NoError},
		"unknown": {input: "sideways", wantErr: require.Error},
		"empty":   {input: "", wantErr: require.Error},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := strata.ParseMode(tt.input)
			tt.wantErr(t, err)
			if err != nil {
				assert.ErrorIs(t, err, strata.ErrUnknownMode)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestModeString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "merge", strata.Merge.String())
	assert.Equal(t, "stack", strata.Stack.String())
}

func TestBuildPartitionCountAndOrder(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		by   []string
		want [][]string // expected keys, in order
	}{
		"single column": {
			by:   []string{"arm"},
			want: [][]string{{"A"}, {"B"}},
		},
		"two columns lexicographic": {
			by: []string{"arm", "site"},
			want: [][]string{
				{"A", "x"}, {"A", "y"}, {"B", "x"}, {"B", "y"},
			},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			res, err := strata.Build(trialData(), tt.by, countTable, strata.Stack)
			require.NoError(t, err)

			// One partition per distinct key combination present.
			require.Len(t, res.Strata, len(tt.want))
			for i, want := range tt.want {
				assert.Equal(t, want, res.Strata[i].Keys)
			}
		})
	}
}

func TestBuildStackScenario(t *testing.T) {
	t.Parallel()
	// 10 rows evenly split across a two-level column.
	ds := strata.Dataset{Columns: []string{"grp", "v"}}
	for i := 0; i < 5; i++ {
		ds.Rows = append(ds.Rows, []string{"B", "1"})
		ds.Rows = append(ds.Rows, []string{"A", "1"})
	}

	res, err := strata.Build(ds, []string{"grp"}, countTable, strata.Stack)
	require.NoError(t, err)

	require.Len(t, res.Strata, 2)
	assert.Equal(t, "A", res.Strata[0].Label)
	assert.Equal(t, "B", res.Strata[1].Label)
	assert.Equal(t, strata.Stack, res.Mode)

	// Row groups: label row then the stratum's summary of its 5 rows,
	// "A" before "B".
	body := res.Table.Body
	require.Len(t, body.Rows, 4)
	assert.Equal(t, "A", body.Rows[0][0])
	assert.Equal(t, []string{"N", "5"}, body.Rows[1][:2])
	assert.Equal(t, "B", body.Rows[2][0])
	assert.Equal(t, []string{"N", "5"}, body.Rows[3][:2])

	// The grouping hint column carries the labels and stays hidden.
	gi := body.ColumnIndex(res.Table.Style.GroupColumn)
	require.GreaterOrEqual(t, gi, 0)
	assert.Equal(t, "A", body.Rows[0][gi])
	assert.Equal(t, "B", body.Rows[3][gi])
	assert.NotContains(t, res.Table.Style.Show, res.Table.Style.GroupColumn)
}

func TestBuildStackLabelRowsBoldAndIndented(t *testing.T) {
	t.Parallel()
	res, err := strata.Build(trialData(), []string{"arm"}, countTable, strata.Stack)
	require.NoError(t, err)

	st := res.Table.Style
	require.Len(t, st.Emphases, 2)
	assert.True(t, st.Emphases[0].Bold)
	assert.Equal(t, []int{0}, st.Emphases[0].Rows)
	assert.Equal(t, []int{2}, st.Emphases[1].Rows)

	require.Len(t, st.Indents, 2)
	assert.Equal(t, []int{1}, st.Indents[0].Rows)
	assert.Equal(t, []int{3}, st.Indents[1].Rows)
}

func TestBuildMerge(t *testing.T) {
	t.Parallel()
	res, err := strata.Build(trialData(), []string{"arm"}, countTable, strata.Merge)
	require.NoError(t, err)

	// Labels wrap in bold emphasis markup when merging side by side.
	require.Len(t, res.Strata, 2)
	assert.Equal(t, "**A**", res.Strata[0].Label)
	assert.Equal(t, "**B**", res.Strata[1].Label)

	body := res.Table.Body
	assert.Equal(t, []string{"characteristic", "value_1", "value_2"}, body.Columns)
	require.Len(t, body.Rows, 1)
	assert.Equal(t, []string{"N", "3", "3"}, body.Rows[0])

	st := res.Table.Style
	require.Len(t, st.Spanners, 2)
	assert.Equal(t, "**A**", st.Spanners[0].Text)
	assert.Equal(t, []string{"value_1"}, st.Spanners[0].Columns)
	assert.Equal(t, "**B**", st.Spanners[1].Text)
	assert.Equal(t, []string{"value_2"}, st.Spanners[1].Columns)
}

func TestBuildMergeUnmatchedRowsStayBlank(t *testing.T) {
	t.Parallel()
	// The second stratum reports an extra characteristic.
	fn := func(ds strata.Dataset) (sumtab.StyledTable, error) {
		rows := [][]string{{"N", strconv.Itoa(ds.NumRows())}}
		if ds.Rows[0][0] == "B" {
			rows = append(rows, []string{"Median", "58"})
		}
		return sumtab.StyledTable{
			Body: sumtab.Table{Columns: []string{"characteristic", "value"}, Rows: rows},
		}, nil
	}

	res, err := strata.Build(trialData(), []string{"arm"}, fn, strata.Merge)
	require.NoError(t, err)

	body := res.Table.Body
	require.Len(t, body.Rows, 2)
	assert.Equal(t, []string{"N", "3", "3"}, body.Rows[0])
	assert.Equal(t, []string{"Median", "", "58"}, body.Rows[1])
}

func TestBuildSeparator(t *testing.T) {
	t.Parallel()
	res, err := strata.Build(trialData(), []string{"arm", "site"}, countTable, strata.Stack,
		strata.WithSeparator(" / "))
	require.NoError(t, err)
	assert.Equal(t, "A / x", res.Strata[0].Label)
}

func TestBuildUsageErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		ds      strata.Dataset
		by      []string
		mode    strata.Mode
		wantErr error
	}{
		"ragged rows": {
			ds:      strata.Dataset{Columns: []string{"a", "b"}, Rows: [][]string{{"1"}}},
			by:      []string{"a"},
			mode:    strata.Stack,
			wantErr: strata.ErrNotTabular,
		},
		"no columns": {
			ds:      strata.Dataset{},
			by:      []string{"a"},
			mode:    strata.Stack,
			wantErr: strata.ErrNotTabular,
		},
		"unknown stratifier": {
			ds:      trialData(),
			by:      []string{"dose"},
			mode:    strata.Stack,
			wantErr: strata.ErrUnknownColumn,
		},
		"no stratifiers": {
			ds:      trialData(),
			by:      nil,
			mode:    strata.Stack,
			wantErr: strata.ErrUnknownColumn,
		},
		"invalid mode": {
			ds:      trialData(),
			by:      []string{"arm"},
			mode:    strata.Mode(42),
			wantErr: strata.ErrUnknownMode,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := strata.Build(tt.ds, tt.by, countTable, tt.mode)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBuildPropagatesConstructionError(t *testing.T) {
	t.Parallel()
	fn := func(strata.Dataset) (sumtab.StyledTable, error) {
		return sumtab.StyledTable{}, assert.AnError
	}
	_, err := strata.Build(trialData(), []string{"arm"}, fn, strata.Stack)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), `stratum "A"`)
}

func TestBuildStackMismatchedColumns(t *testing.T) {
	t.Parallel()
	fn := func(ds strata.Dataset) (sumtab.StyledTable, error) {
		cols := []string{"characteristic", "value"}
		if ds.Rows[0][0] == "B" {
			cols = []string{"other", "value"}
		}
		return sumtab.StyledTable{Body: sumtab.Table{Columns: cols}}, nil
	}
	_, err := strata.Build(trialData(), []string{"arm"}, fn, strata.Stack)
	assert.ErrorIs(t, err, strata.ErrShape)
}

func TestBuildStackRendersEndToEnd(t *testing.T) {
	t.Parallel()
	res, err := strata.Build(trialData(), []string{"arm"}, countTable, strata.Stack)
	require.NoError(t, err)

	got, err := sumtab.Render(res.Table, sumtab.NewTextBuilder())
	require.NoError(t, err)
	out := got.(*sumtab.TextBuilder).String()

	assert.Contains(t, out, "A")
	assert.Contains(t, out, "    N")
	assert.NotContains(t, out, "_stratum")
}
