package campaign

import "github.com/caoccao/javet-buildkit/internal/patch"

var v8 = &Campaign{
	Name:        "v8",
	Description: "Embedded V8 version",
	Format:      Quad,
	Targets: []patch.Target{
		lf("README.rst", patch.Dotted("V8 ``v"+quad+"``")),
		lf(".github/workflows/android_v8_build.yml", workflowV8),
		lf(".github/workflows/linux_x86_64_build.yml", workflowV8),
		lf(".github/workflows/linux_x86_64_docker.yml", workflowV8),
		lf(".github/workflows/macos_arm64_build.yml", workflowV8),
		lf(".github/workflows/macos_x86_64_build.yml", workflowV8),
		lf(".github/workflows/windows_x86_64_build.yml", workflowV8),
		lf("docker/android/base.Dockerfile", dockerV8),
		lf("docker/linux-arm64/base_all_in_one.Dockerfile", dockerV8),
		lf("docker/linux-arm64/base_v8.Dockerfile",
			patch.Dotted(`v8_`+quad),
			patch.Dotted(`JAVET_V8_VERSION=`+quad),
		),
		lf("docker/linux-x86_64/build.Dockerfile", dockerV8),
		lf("docker/windows-x86_64/build.Dockerfile", dockerV8),
		lf("src/main/java/com/caoccao/javet/enums/JSRuntimeType.java",
			patch.Dotted(`"`+quad+`",`),
		),
	},
}

var (
	workflowV8 = patch.Dotted(`JAVET_V8_VERSION: ` + quad + `$`)
	dockerV8   = patch.Dotted(`JAVET_V8_VERSION=` + quad + `$`)
)
