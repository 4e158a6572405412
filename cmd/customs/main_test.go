package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	main "github.com/customs-bot/customs/cmd/customs"
)

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("no command shows help and fails", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		m := main.NewMain()
		err := m.Run(context.Background(), nil, stdout, stderr)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
	})

	t.Run("help flag succeeds", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		m := main.NewMain()
		err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)

		require.NoError(t, err)
	})

	t.Run("calc end to end", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		m := main.NewMain()
		err := m.Run(context.Background(),
			[]string{"calc", "BMW X5 2022 г.в., 3.0 л, 249 л.с., 50000$"},
			stdout, stderr)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "Распознано")
		assert.Contains(t, output, "Год: 2022")
		assert.Contains(t, output, "Расчет растаможки")
		assert.Contains(t, output, "Итого")
	})

	t.Run("calc with unparseable text fails", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		m := main.NewMain()
		err := m.Run(context.Background(), []string{"calc", "привет"}, stdout, stderr)

		require.Error(t, err)
	})
}
