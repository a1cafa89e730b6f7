package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophauth/internal/client/api"
	"github.com/dmitrijs2005/gophauth/internal/client/config"
)

func stubInputs(t *testing.T, username string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return username, nil }
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

type fakeSession struct {
	user    string
	pass    []byte
	tokens  bool
	regErr  error
	logErr  error
	refErr  error
	protMsg string
	protErr error
}

func (f *fakeSession) Register(_ context.Context, user string, pass []byte) (string, error) {
	f.user, f.pass = user, append([]byte(nil), pass...)
	if f.regErr != nil {
		return "", f.regErr
	}
	return "User created successfully", nil
}

func (f *fakeSession) Login(_ context.Context, user string, pass []byte) error {
	f.user, f.pass = user, append([]byte(nil), pass...)
	if f.logErr != nil {
		return f.logErr
	}
	f.tokens = true
	return nil
}

func (f *fakeSession) Refresh(context.Context) error {
	if f.refErr != nil {
		f.tokens = false
	}
	return f.refErr
}

func (f *fakeSession) Protected(context.Context) (string, error) { return f.protMsg, f.protErr }
func (f *fakeSession) Logout()                                   { f.tokens = false }
func (f *fakeSession) LoggedIn() bool                            { return f.tokens }
func (f *fakeSession) UserName() string                          { return f.user }

func newTestApp(s Session) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{config: &config.Config{ServerURL: "http://test"}, session: s, reader: bufio.NewReader(strings.NewReader("")), out: &out}, &out
}

func TestRegister_Success(t *testing.T) {
	pw := []byte("secret")
	stubInputs(t, "alice", pw)
	f := &fakeSession{}
	a, out := newTestApp(f)

	require.NoError(t, a.Register(context.Background()))
	assert.Equal(t, "alice", f.user)
	assert.Equal(t, []byte("secret"), f.pass)
	assert.Contains(t, out.String(), "User created successfully")
	assert.Equal(t, make([]byte, len(pw)), pw, "password must be wiped")
}

func TestRegister_Conflict(t *testing.T) {
	stubInputs(t, "alice", []byte("secret"))
	f := &fakeSession{regErr: &api.StatusError{Status: http.StatusConflict, Message: "User already exists"}}
	a, out := newTestApp(f)

	err := a.Register(context.Background())
	require.Error(t, err)
	assert.Contains(t, out.String(), "Error: User already exists")
}

func TestRegister_InputError(t *testing.T) {
	origST := getSimpleText
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return "", io.EOF }
	t.Cleanup(func() { getSimpleText = origST })

	f := &fakeSession{}
	a, _ := newTestApp(f)
	assert.ErrorIs(t, a.Register(context.Background()), io.EOF)
	assert.Empty(t, f.user)
}

func TestLogin(t *testing.T) {
	stubInputs(t, "alice", []byte("pw1"))
	f := &fakeSession{}
	a, out := newTestApp(f)

	require.NoError(t, a.Login(context.Background()))
	assert.True(t, a.isLoggedIn())
	assert.Equal(t, "alice", a.status())
	assert.Contains(t, out.String(), "Login successful")
}

func TestLogin_Unavailable(t *testing.T) {
	stubInputs(t, "alice", []byte("pw1"))
	f := &fakeSession{logErr: api.ErrUnavailable}
	a, out := newTestApp(f)

	assert.Error(t, a.Login(context.Background()))
	assert.False(t, a.isLoggedIn())
	assert.Equal(t, "guest", a.status())
	assert.Contains(t, out.String(), "server unavailable")
}

func TestHello(t *testing.T) {
	f := &fakeSession{tokens: true, protMsg: "Hello alice, welcome to the success page!"}
	a, out := newTestApp(f)

	require.NoError(t, a.Hello(context.Background()))
	assert.Contains(t, out.String(), "Hello alice, welcome to the success page!")
}

func TestHello_SessionExpired(t *testing.T) {
	f := &fakeSession{protErr: api.ErrUnauthorized}
	a, out := newTestApp(f)

	assert.ErrorIs(t, a.Hello(context.Background()), api.ErrUnauthorized)
	assert.Contains(t, out.String(), "please log in")
	assert.Contains(t, out.String(), "Session cleared")
}

func TestRefreshAndLogout(t *testing.T) {
	f := &fakeSession{tokens: true}
	a, out := newTestApp(f)

	require.NoError(t, a.Refresh(context.Background()))
	assert.Contains(t, out.String(), "Access token refreshed")

	require.NoError(t, a.Logout(context.Background()))
	assert.False(t, a.isLoggedIn())

	f.refErr = errors.New("boom")
	assert.Error(t, a.Refresh(context.Background()))
	assert.Contains(t, out.String(), "Error: boom")
}

func TestRun_EndsOnEOF(t *testing.T) {
	a, out := newTestApp(&fakeSession{})
	a.reader = bufio.NewReader(strings.NewReader("help\nexit\n"))

	a.Run(context.Background())
	assert.Contains(t, out.String(), "server http://test")
	assert.Contains(t, out.String(), "Bye!")
}
