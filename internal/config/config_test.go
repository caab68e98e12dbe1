package config

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"

	. "github.com/pingcap/check"
)

// Hook up gocheck into the "go test" runner.
func Test(t *testing.T) { TestingT(t) }

var _ = Suite(&testConfigSuite{})

type testConfigSuite struct{}

func (s *testConfigSuite) TestDefaults(c *C) {
	dir := c.MkDir()
	cfg := NewConfig()
	err := cfg.Parse([]string{"-data-path", dir})
	c.Assert(err, IsNil)
	c.Assert(cfg.Host, Equals, "0.0.0.0")
	c.Assert(cfg.Port, Equals, 3000)
	c.Assert(cfg.LogLevel, Equals, "debug")
	c.Assert(cfg.ServerType, Equals, ServerTypeREST)
	c.Assert(cfg.Addr(), Equals, "0.0.0.0:3000")
	c.Assert(cfg.ServesREST(), IsTrue)
	c.Assert(cfg.ServesGraphQL(), IsFalse)
}

func (s *testConfigSuite) TestConfigFileAndFlags(c *C) {
	dir := c.MkDir()
	path := filepath.Join(dir, "jsonserver.toml")
	content := `
data-path = "` + dir + `"
port = 8080
log-level = "info"
server-type = "all"
seq-url = "http://localhost:5341"
`
	c.Assert(os.WriteFile(path, []byte(content), 0644), IsNil)

	cfg := NewConfig()
	err := cfg.Parse([]string{"-config", path, "-port", "9090"})
	c.Assert(err, IsNil)
	c.Assert(cfg.Port, Equals, 9090, Commentf("command line wins over the file"))
	c.Assert(cfg.LogLevel, Equals, "info")
	c.Assert(cfg.ServerType, Equals, ServerTypeAll)
	c.Assert(cfg.SeqURL, Equals, "http://localhost:5341")
	c.Assert(cfg.ServesREST(), IsTrue)
	c.Assert(cfg.ServesGraphQL(), IsTrue)
}

func (s *testConfigSuite) TestEnvironment(c *C) {
	dir := c.MkDir()
	os.Setenv("JSONSERVER_SERVER_TYPE", "graph_ql")
	os.Setenv("JSONSERVER_PORT", "4000")
	defer os.Unsetenv("JSONSERVER_SERVER_TYPE")
	defer os.Unsetenv("JSONSERVER_PORT")

	cfg := NewConfig()
	err := cfg.Parse([]string{"-data-path", dir, "-port", "5000"})
	c.Assert(err, IsNil)
	c.Assert(cfg.ServerType, Equals, ServerTypeGraphQL)
	c.Assert(cfg.Port, Equals, 5000, Commentf("flags given on the command line are not overridden"))
}

func (s *testConfigSuite) TestInvalidEnvironmentValue(c *C) {
	os.Setenv("JSONSERVER_PORT", "many")
	defer os.Unsetenv("JSONSERVER_PORT")

	cfg := NewConfig()
	err := cfg.Parse([]string{"-data-path", c.MkDir()})
	c.Assert(err, ErrorMatches, ".*JSONSERVER_PORT.*")
}

func (s *testConfigSuite) TestUnknownArgument(c *C) {
	cfg := NewConfig()
	cfg.SetOutput(&bytes.Buffer{})
	err := cfg.Parse([]string{"-data-path", c.MkDir(), "extra"})
	c.Assert(err, ErrorMatches, ".*'extra' is not a valid flag.*")
}

func (s *testConfigSuite) TestHelpAndVersion(c *C) {
	cfg := NewConfig()
	cfg.SetOutput(&bytes.Buffer{})
	c.Assert(cfg.Parse([]string{"-h"}), Equals, flag.ErrHelp)

	cfg = NewConfig()
	c.Assert(cfg.Parse([]string{"-version"}), IsNil)
	c.Assert(cfg.PrintVersion(), IsTrue)

	var buf bytes.Buffer
	PrintVersionInfo(&buf)
	c.Assert(buf.String(), Matches, "(?s)jsonserver Version: .*Go Version: .*")
}

func (s *testConfigSuite) TestValidate(c *C) {
	dir := c.MkDir()
	cfg := NewConfig()
	cfg.DataPath = dir

	cfg.Port = 70000
	c.Assert(cfg.validate(), ErrorMatches, ".*invalid port.*")
	cfg.Port = 3000

	cfg.ServerType = "soap"
	c.Assert(cfg.validate(), ErrorMatches, ".*server-type.*")
	cfg.ServerType = ServerTypeAll

	cfg.LogLevel = "loud"
	c.Assert(cfg.validate(), ErrorMatches, ".*log-level.*")
	cfg.LogLevel = "warn"

	cfg.SeqURL = "not a url"
	c.Assert(cfg.validate(), ErrorMatches, ".*SeqURL.*")
	cfg.SeqURL = ""

	cfg.DataPath = filepath.Join(dir, "missing")
	c.Assert(cfg.validate(), ErrorMatches, ".*does not exist.*")
	cfg.Seed = true
	c.Assert(cfg.validate(), IsNil, Commentf("a missing directory is created by seeding"))

	file := filepath.Join(dir, "file.json")
	c.Assert(os.WriteFile(file, []byte("[]"), 0644), IsNil)
	cfg.DataPath = file
	c.Assert(cfg.validate(), ErrorMatches, ".*not a directory.*")
}
