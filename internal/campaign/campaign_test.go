package campaign

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/caoccao/javet-buildkit/internal/patch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func readTree(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func resultFor(t *testing.T, report *Report, root, rel string) *patch.Result {
	t.Helper()
	want := filepath.Join(root, filepath.FromSlash(rel))
	for _, r := range report.Results {
		if r.Path == want {
			return r
		}
	}
	t.Fatalf("no result for %s", rel)
	return nil
}

func TestBuiltinTables(t *testing.T) {
	set := Builtin()
	assert.Equal(t, []string{"javet", "node", "v8"}, set.Names())

	for _, c := range set.All() {
		t.Run(c.Name, func(t *testing.T) {
			require.NotEmpty(t, c.Targets)
			seen := make(map[string]bool)
			for _, target := range c.Targets {
				assert.NotEmpty(t, target.Rules, "target %s has no rules", target.Path)
				assert.False(t, seen[target.Path], "target %s listed twice", target.Path)
				seen[target.Path] = true
			}
		})
	}
}

func TestLookup(t *testing.T) {
	set := Builtin()

	c, err := set.Lookup("v8")
	require.NoError(t, err)
	assert.Equal(t, Quad, c.Format)

	_, err = set.Lookup("deno")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "javet, node, v8")
}

func TestRunEndToEnd(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"build.gradle.kts": "object Config {\n        const val JAVET = \"5.0.2\"\n}\n",
	})
	c, err := Builtin().Lookup("javet")
	require.NoError(t, err)

	var seen int
	report, err := c.Run(root, "5.0.3", RunOptions{OnResult: func(*patch.Result) { seen++ }})
	require.NoError(t, err)

	assert.Len(t, report.Results, len(c.Targets), "every target is attempted once")
	assert.Equal(t, len(c.Targets), seen)
	assert.Equal(t, patch.Updated, resultFor(t, report, root, "build.gradle.kts").Outcome)
	assert.Equal(t, patch.Missing, resultFor(t, report, root, "README.rst").Outcome)
	assert.Equal(t, "object Config {\n        const val JAVET = \"5.0.3\"\n}\n", readTree(t, root, "build.gradle.kts"))
	assert.False(t, report.Failed())

	summary := report.Summary()
	assert.Equal(t, 1, summary.Updated)
	assert.Equal(t, len(c.Targets)-1, summary.Missing)

	report, err = c.Run(root, "5.0.3", RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, patch.Skipped, resultFor(t, report, root, "build.gradle.kts").Outcome)
}

func TestRunResourceTuples(t *testing.T) {
	root := t.TempDir()
	rc := "" +
		"FILEVERSION 5,0,2,0\r\n" +
		"VALUE \"FileVersion\", \"5.0.2\"\r\n" +
		"VALUE \"OriginalFilename\", \"libjavet-v8-windows-x86_64.v.5.0.2.dll\"\r\n"
	writeTree(t, root, map[string]string{"cpp/jni/javet_resource_v8.rc": rc})

	c, err := Builtin().Lookup("javet")
	require.NoError(t, err)
	report, err := c.Run(root, "5.0.3", RunOptions{})
	require.NoError(t, err)

	assert.Equal(t, patch.Updated, resultFor(t, report, root, "cpp/jni/javet_resource_v8.rc").Outcome)
	assert.Equal(t, ""+
		"FILEVERSION 5,0,3,0\r\n"+
		"VALUE \"FileVersion\", \"5.0.3\"\r\n"+
		"VALUE \"OriginalFilename\", \"libjavet-v8-windows-x86_64.v.5.0.3.dll\"\r\n",
		readTree(t, root, "cpp/jni/javet_resource_v8.rc"))
}

func TestRunContinuesPastFailures(t *testing.T) {
	root := t.TempDir()
	// A directory where a file is expected cannot be read.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "README.rst"), 0o755))
	writeTree(t, root, map[string]string{
		"docker/linux-x86_64/build.Dockerfile": "ENV JAVET_NODE_VERSION=22.0.0\n",
		"src/test/java/com/caoccao/javet/interop/TestNodeRuntime.java": "assertEquals(\"v22.0.0\", version);\n",
	})

	c, err := Builtin().Lookup("node")
	require.NoError(t, err)
	report, err := c.Run(root, "24.12.0", RunOptions{})
	require.NoError(t, err)

	assert.Equal(t, patch.Failed, resultFor(t, report, root, "README.rst").Outcome)
	assert.Equal(t, patch.Updated, resultFor(t, report, root, "docker/linux-x86_64/build.Dockerfile").Outcome)
	assert.Equal(t, patch.Updated, resultFor(t, report, root, "src/test/java/com/caoccao/javet/interop/TestNodeRuntime.java").Outcome)
	assert.True(t, report.Failed())
	assert.Equal(t, "ENV JAVET_NODE_VERSION=24.12.0\n", readTree(t, root, "docker/linux-x86_64/build.Dockerfile"))
}

func TestRunRejectsInvalidValue(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"README.rst": "V8 ``v14.4.258.13``\n"})

	c, err := Builtin().Lookup("v8")
	require.NoError(t, err)

	for _, value := range []string{"14.4.258", "v14.4.258.14", "14.4.258.x", ""} {
		_, err := c.Run(root, value, RunOptions{})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "value %q", value)
		assert.Equal(t, "v8", verr.Campaign)
	}
	assert.Equal(t, "V8 ``v14.4.258.13``\n", readTree(t, root, "README.rst"))
}

func TestRunWritesOlderVersion(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"build.gradle.kts": "        const val JAVET = \"5.0.3\"\n"})

	report, err := javet.Run(root, "5.0.2", RunOptions{})
	require.NoError(t, err)
	assert.Len(t, report.Results, len(javet.Targets))
	assert.Equal(t, patch.Updated, resultFor(t, report, root, "build.gradle.kts").Outcome)
	assert.Equal(t, "        const val JAVET = \"5.0.2\"\n", readTree(t, root, "build.gradle.kts"))
}

func TestRunRefuseDowngrade(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"README.rst": "Node.js ``v24.12.0``\n"})

	c, err := Builtin().Lookup("node")
	require.NoError(t, err)

	_, err = c.Run(root, "24.9.0", RunOptions{RefuseDowngrade: true})
	var derr *DowngradeError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "24.12.0", derr.Current)
	assert.Equal(t, "Node.js ``v24.12.0``\n", readTree(t, root, "README.rst"))

	report, err := c.Run(root, "24.13.0", RunOptions{RefuseDowngrade: true})
	require.NoError(t, err)
	assert.Equal(t, patch.Updated, resultFor(t, report, root, "README.rst").Outcome)
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"README.rst":                      "Javet 5.0.3 <version>5.0.3</version>\n        <version>5.0.3</version>\n",
		"cpp/jni/javet_resource_node.rc":  "FILEVERSION 5,0,2,0\r\n",
		"docker/linux-x86_64/build.env":   "JAVET_VERSION=5.0.3\n",
	})

	c, err := Builtin().Lookup("javet")
	require.NoError(t, err)
	scans := c.Scan(root)
	require.Len(t, scans, len(c.Targets))

	var missing int
	for _, s := range scans {
		require.NoError(t, s.Err)
		if s.Missing {
			missing++
		}
	}
	assert.Equal(t, len(c.Targets)-3, missing)
	assert.Equal(t, []string{"5.0.2", "5.0.3"}, Values(scans))
}

func TestParseCampaignFile(t *testing.T) {
	data := []byte(`
campaigns:
  - name: android
    description: Android packaging version
    format: triple
    targets:
      - path: android/pom.xml
        rules:
          - pattern: '^    <version>(?P<version>\d+\.\d+\.\d+)</version>$'
      - path: cpp/jni/extra.rc
        separator: crlf
        rules:
          - pattern: '(?P<version>\d+,\d+,\d+)'
            delimiter: comma
`)
	campaigns, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, campaigns, 1)

	c := campaigns[0]
	assert.Equal(t, "android", c.Name)
	assert.Equal(t, Triple, c.Format)
	require.Len(t, c.Targets, 2)
	assert.Equal(t, patch.LF, c.Targets[0].Separator)
	assert.Equal(t, patch.CRLF, c.Targets[1].Separator)
	assert.Equal(t, patch.Comma, c.Targets[1].Rules[0].Delimiter)

	root := t.TempDir()
	writeTree(t, root, map[string]string{"cpp/jni/extra.rc": "FILEVERSION 1,0,0\r\n"})
	report, err := c.Run(root, "1.2.0", RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, "FILEVERSION 1,2,0\r\n", readTree(t, root, "cpp/jni/extra.rc"))
	assert.Equal(t, 1, report.Summary().Missing)
}

func TestParseCampaignFileErrors(t *testing.T) {
	tests := map[string]string{
		"empty":           `campaigns: []`,
		"missing name":    "campaigns:\n  - targets: [{path: a, rules: [{pattern: '(?P<version>1)'}]}]\n",
		"bad format":      "campaigns:\n  - name: x\n    format: semver\n    targets: [{path: a, rules: [{pattern: '(?P<version>1)'}]}]\n",
		"no group":        "campaigns:\n  - name: x\n    targets: [{path: a, rules: [{pattern: '(1)'}]}]\n",
		"bad separator":   "campaigns:\n  - name: x\n    targets: [{path: a, separator: cr, rules: [{pattern: '(?P<version>1)'}]}]\n",
		"no rules":        "campaigns:\n  - name: x\n    targets: [{path: a}]\n",
		"duplicate names": "campaigns:\n  - name: x\n    targets: [{path: a, rules: [{pattern: '(?P<version>1)'}]}]\n  - name: x\n    targets: [{path: a, rules: [{pattern: '(?P<version>1)'}]}]\n",
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestSetAddReplacesByName(t *testing.T) {
	set := Builtin()
	custom := &Campaign{Name: "node", Format: Triple}
	set.Add(custom)
	set.Add(&Campaign{Name: "android", Format: Triple})

	got, err := set.Lookup("node")
	require.NoError(t, err)
	assert.Same(t, custom, got)
	assert.Equal(t, []string{"javet", "node", "v8", "android"}, set.Names())
}
