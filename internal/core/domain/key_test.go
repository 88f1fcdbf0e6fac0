package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/packsweep/internal/core/domain"
)

func TestResourceKey_MapKey(t *testing.T) {
	a := domain.ResourceKey{TypeID: 1, GroupID: 2, InstanceID: 3, ResourceID: 4}
	b := domain.ResourceKey{TypeID: 1, GroupID: 2, InstanceID: 3, ResourceID: 4}
	c := domain.ResourceKey{TypeID: 1, GroupID: 2, InstanceID: 3}

	m := map[domain.ResourceKey]int{a: 1}
	m[b]++
	m[c]++

	assert.Len(t, m, 2)
	assert.Equal(t, 2, m[a])
}

func TestResourceKey_String(t *testing.T) {
	k := domain.ResourceKey{TypeID: 0xE86B1EEF, GroupID: 0x1, InstanceID: 0xFF, ResourceID: 0}
	assert.Equal(t, "T:0xE86B1EEF G:0x00000001 I:0x000000FF R:0x00000000", k.String())
}

func TestResourceKey_Compare(t *testing.T) {
	tests := []struct {
		name string
		a, b domain.ResourceKey
		want int
	}{
		{
			name: "equal",
			a:    domain.ResourceKey{TypeID: 1, InstanceID: 2},
			b:    domain.ResourceKey{TypeID: 1, InstanceID: 2},
			want: 0,
		},
		{
			name: "type decides first",
			a:    domain.ResourceKey{TypeID: 1, InstanceID: 9},
			b:    domain.ResourceKey{TypeID: 2},
			want: -1,
		},
		{
			name: "resource decides last",
			a:    domain.ResourceKey{TypeID: 1, GroupID: 1, InstanceID: 1, ResourceID: 2},
			b:    domain.ResourceKey{TypeID: 1, GroupID: 1, InstanceID: 1, ResourceID: 1},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Compare(tt.b))
		})
	}
}
