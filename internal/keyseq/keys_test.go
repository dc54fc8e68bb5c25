package keyseq

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"
)

func TestToKey(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		want Key
	}{
		{"ArrowUp", Key{Key: KeyArrowUp}},
		{"Pgdn", Key{Key: KeyPgdn}},
		{"F5", Key{Key: KeyType(tcell.KeyF5)}},
		{"Enter", Key{Key: KeyEnter}},
		{"Esc", Key{Key: KeyEsc}},
		{"C-[", Key{Key: KeyEsc}},
		{"C-a", Key{Key: KeyCtrlA}},
		{"C-h", Key{Key: KeyBackspace}},
		{"C-m", Key{Key: KeyEnter}},
		{"C-M", Key{Key: KeyEnter}},
		{"C-J", Key{Key: KeyCtrlJ}},
		{"C-Enter", Key{Modifier: ModCtrl, Key: KeyEnter}},
		{"S-Enter", Key{Modifier: ModShift, Key: KeyEnter}},
		{"C-ArrowLeft", Key{Modifier: ModCtrl, Key: KeyArrowLeft}},
		{"S-C-y", Key{Modifier: ModShift, Key: KeyCtrlY}},
		{"M-b", Key{Modifier: ModAlt, Key: KeyRune, Ch: 'b'}},
		{"M-G", Key{Modifier: ModAlt, Key: KeyRune, Ch: 'G'}},
		{"x", Key{Key: KeyRune, Ch: 'x'}},
		{"語", Key{Key: KeyRune, Ch: '語'}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			k, err := ToKey(tt.name)
			require.NoError(t, err)
			require.Equal(t, tt.want, k)
		})
	}
}

func TestToKeyErrors(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"", "NoSuchKey", "C-", "M-"} {
		_, err := ToKey(name)
		require.Error(t, err, "%q", name)
	}
}

func TestKeyString(t *testing.T) {
	t.Parallel()
	require.Equal(t, "C-a", MustToKey("C-a").String())
	require.Equal(t, "BS", MustToKey("C-h").String())
	require.Equal(t, "C-ArrowLeft", MustToKey("C-ArrowLeft").String())
	require.Equal(t, "M-g", MustToKey("M-g").String())
	require.Equal(t, "S-C-y", MustToKey("S-C-y").String())

	list, err := ToKeyList("C-x, M-f ,Enter")
	require.NoError(t, err)
	require.Equal(t, "C-x,M-f,Enter", list.String())
}

func TestIsRune(t *testing.T) {
	t.Parallel()
	require.True(t, NewKeyFromRune('a').IsRune())
	require.True(t, Key{Modifier: ModShift, Key: KeyRune, Ch: 'A'}.IsRune())
	require.False(t, MustToKey("M-a").IsRune())
	require.False(t, NewKeyFromKey(KeyEnter).IsRune())
}

func TestIsControl(t *testing.T) {
	t.Parallel()
	require.True(t, IsControl(KeyCtrlA))
	require.True(t, IsControl(KeyEsc))
	require.True(t, IsControl(KeyBackspace2))
	require.False(t, IsControl(KeyRune))
	require.False(t, IsControl(KeyArrowUp))
}
