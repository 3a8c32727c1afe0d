package dashboard_test

import (
	"testing"

	"github.com/jrsteele09/song-ranker-admin/dashboard"
	"github.com/stretchr/testify/require"
)

func TestTarget_Path(t *testing.T) {
	require.Equal(t, "/members/M1/tables", dashboard.TableView("M1").Path())
	require.Equal(t, "/members/a%2Fb/tables", dashboard.TableView("a/b").Path())
	require.Equal(t, "/signup", dashboard.MemberCreationTarget.Path())
	require.Equal(t, "/signin", dashboard.SignInTarget.Path())
	require.Equal(t, "/resetpassword", dashboard.ResetPasswordTarget.Path())
	require.Equal(t, "/signin", dashboard.Target{}.Path())
}

func TestTarget_String(t *testing.T) {
	require.Equal(t, "table_view(M1)", dashboard.TableView("M1").String())
	require.Equal(t, "member_creation", dashboard.MemberCreationTarget.String())
}

func TestIsRoot(t *testing.T) {
	require.True(t, dashboard.IsRoot("/"))
	require.True(t, dashboard.IsRoot(""))
	require.True(t, dashboard.IsRoot("//"))
	require.False(t, dashboard.IsRoot("/signin"))
}

func TestParseFragment(t *testing.T) {
	values := dashboard.ParseFragment("#type=recovery&access_token=A%2BB")
	require.Equal(t, "recovery", values.Get("type"))
	require.Equal(t, "A+B", values.Get("access_token"))

	require.Empty(t, dashboard.ParseFragment(""))
	require.Empty(t, dashboard.ParseFragment("#"))
	require.Empty(t, dashboard.ParseFragment("#a=%zz"))
}
