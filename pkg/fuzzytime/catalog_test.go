package fuzzytime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog_Order(t *testing.T) {
	t.Parallel()

	a := MustDescriptor("a", FamilyTimeOnly, 1, "{hour}:{minute}")
	b := MustDescriptor("b", FamilyTimeOnly, 5, "{hour}h{minute}")
	c := MustDescriptor("c", FamilyTimeOnly, 1, "{hour}.{minute}")
	d := MustDescriptor("d", FamilyTimeOnly, 5, "{hour} {minute}")

	catalog, err := NewCatalog(a, b, c, d)
	require.NoError(t, err)

	var ids []string
	for _, desc := range catalog.Descriptors() {
		ids = append(ids, desc.ID())
	}
	assert.Equal(t, []string{"b", "d", "a", "c"}, ids)
	assert.Equal(t, 4, catalog.Len())
}

func TestNewCatalog_Errors(t *testing.T) {
	t.Parallel()

	a := MustDescriptor("a", FamilyTimeOnly, 1, "{hour}:{minute}")

	_, err := NewCatalog(a, a)
	assert.EqualError(t, err, `duplicate descriptor id "a"`)

	_, err = NewCatalog(a, nil)
	assert.EqualError(t, err, "descriptor 1 is nil")
}

func TestCatalog_With(t *testing.T) {
	t.Parallel()

	base := DefaultCatalog()
	extra := MustDescriptor("dotted-time", FamilyTimeOnly, 100, "{hour}h{minute}")

	extended, err := base.With(extra)
	require.NoError(t, err)
	assert.Equal(t, base.Len()+1, extended.Len())
	assert.Equal(t, "dotted-time", extended.Descriptors()[0].ID())

	_, ok := base.Lookup("dotted-time")
	assert.False(t, ok, "With must not modify the receiver")
	found, ok := extended.Lookup("dotted-time")
	require.True(t, ok)
	assert.Same(t, extra, found)

	_, err = extended.With(extra)
	assert.Error(t, err)
}

func TestCatalog_DescriptorsIsCopy(t *testing.T) {
	t.Parallel()

	catalog := DefaultCatalog()
	first := catalog.Descriptors()[0]
	list := catalog.Descriptors()
	list[0] = nil
	assert.Same(t, first, catalog.Descriptors()[0])
}

func TestBuiltinCatalog(t *testing.T) {
	t.Parallel()

	for _, order := range []DateOrder{MonthFirst, DayFirst} {
		order := order
		t.Run(order.String(), func(t *testing.T) {
			t.Parallel()

			catalog := BuiltinCatalog(order)
			assert.Same(t, catalog, BuiltinCatalog(order), "built once per order")

			descriptors := catalog.Descriptors()
			assert.Len(t, descriptors, len(BuiltinDescriptors(order)))
			for i := 1; i < len(descriptors); i++ {
				assert.GreaterOrEqual(t, descriptors[i-1].Priority(), descriptors[i].Priority(),
					"%s before %s", descriptors[i-1], descriptors[i])
			}

			families := map[Family]bool{}
			for _, d := range descriptors {
				families[d.Family()] = true
			}
			assert.Len(t, families, len(familyNames), "every family is represented")
		})
	}

	assert.Same(t, BuiltinCatalog(DefaultDateOrder), DefaultCatalog())
	_, ok := BuiltinCatalog(MonthFirst).Lookup("mdy-slash")
	assert.True(t, ok)
	_, ok = BuiltinCatalog(DayFirst).Lookup("dmy-slash")
	assert.True(t, ok)
	_, ok = BuiltinCatalog(DayFirst).Lookup("mdy-slash")
	assert.False(t, ok)
}

func TestBuiltinCatalog_UnknownOrderPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { BuiltinCatalog(DateOrder(7)) })
}

func TestParseDateOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    DateOrder
		wantErr bool
	}{
		{"month-first", MonthFirst, false},
		{"MDY", MonthFirst, false},
		{" day-first ", DayFirst, false},
		{"dmy", DayFirst, false},
		{"ymd", 0, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseDateOrder(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, must(ParseDateOrder(got.String())))
		})
	}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
