package campaign

import "github.com/caoccao/javet-buildkit/internal/patch"

var node = &Campaign{
	Name:        "node",
	Description: "Embedded Node.js version",
	Format:      Triple,
	Targets: []patch.Target{
		lf("README.rst", patch.Dotted("Node\\.js ``v"+triple+"``")),
		lf(".github/workflows/android_node_build.yml", workflowNode),
		lf(".github/workflows/linux_x86_64_build.yml", workflowNode),
		lf(".github/workflows/linux_x86_64_docker.yml", workflowNode),
		lf(".github/workflows/macos_arm64_build.yml", workflowNode),
		lf(".github/workflows/macos_x86_64_build.yml", workflowNode),
		lf(".github/workflows/windows_x86_64_build.yml", workflowNode),
		lf("docker/linux-x86_64/build.Dockerfile", dockerNode),
		lf("docker/windows-x86_64/build.Dockerfile", dockerNode),
		lf("src/test/java/com/caoccao/javet/interop/TestNodeRuntime.java",
			patch.Dotted(`"v`+triple+`",`),
		),
	},
}

var (
	workflowNode = patch.Dotted(`JAVET_NODE_VERSION: ` + triple + `$`)
	dockerNode   = patch.Dotted(`JAVET_NODE_VERSION=` + triple + `$`)
)
