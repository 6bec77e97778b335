package result_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"stuma/internal/result"
)

func TestVariants(t *testing.T) {
	l := result.Loading[int]()
	require.True(t, l.IsLoading())
	require.False(t, l.IsSuccess())
	_, ok := l.Value()
	require.False(t, ok)
	require.NoError(t, l.Err())

	s := result.Success(42)
	require.True(t, s.IsSuccess())
	v, ok := s.Value()
	require.True(t, ok)
	require.Equal(t, 42, v)

	cause := errors.New("boom")
	f := result.Failure[int](cause)
	require.True(t, f.IsFailure())
	require.ErrorIs(t, f.Err(), cause)
	require.Equal(t, "boom", f.Message())
}

func TestNilMeansAbsent(t *testing.T) {
	var r *result.Result[string]
	require.False(t, r.IsLoading())
	require.False(t, r.IsSuccess())
	require.False(t, r.IsFailure())
	require.NoError(t, r.Err())
	require.Empty(t, r.Message())
}
