package campaign

import "github.com/caoccao/javet-buildkit/internal/patch"

var javet = &Campaign{
	Name:        "javet",
	Description: "Javet product version",
	Format:      Triple,
	Targets: []patch.Target{
		lf("README.rst",
			patch.Dotted(`^        <version>`+triple+`</version>$`),
			patch.Dotted(`javet[\-\w]*:`+triple+`["'@]{1}`),
			patch.Dotted(`version: '`+triple+`'`),
		),
		lf("build.gradle.kts",
			patch.Dotted(`^        const val JAVET = "`+triple+`"$`),
		),
		lf(".github/workflows/android_node_build.yml", workflowJavet),
		lf(".github/workflows/android_v8_build.yml", workflowJavet),
		lf(".github/workflows/linux_x86_64_build.yml", workflowJavet),
		lf(".github/workflows/linux_build_artifact.yml", workflowJavet),
		lf(".github/workflows/linux_build_node_v8_image.yml", workflowJavet),
		lf(".github/workflows/macos_arm64_build.yml", workflowJavet),
		lf(".github/workflows/macos_x86_64_build.yml", workflowJavet),
		lf(".github/workflows/windows_x86_64_build.yml", workflowJavet),
		lf("docker/android/base.Dockerfile", patch.Dotted(`javet-android:`+triple+` `)),
		lf("docker/android/build.Dockerfile", patch.Dotted(`javet-android:`+triple+`$`)),
		lf("docker/linux-arm64/base_all_in_one.Dockerfile", patch.Dotted(`javet-arm64:`+triple+` `)),
		lf("docker/linux-arm64/build_all_in_one.Dockerfile", patch.Dotted(`javet-arm64:`+triple+`$`)),
		lf("docker/linux-arm64/build_artifact.Dockerfile", envJavet),
		lf("docker/linux-arm64/base_gradle.Dockerfile", patch.Dotted(`arm64-`+triple+` `)),
		lf("docker/linux-x86_64/base_all_in_one.Dockerfile", patch.Dotted(`javet:`+triple+` `)),
		lf("docker/linux-x86_64/build_all_in_one.Dockerfile", patch.Dotted(`javet:`+triple+`$`)),
		lf("docker/linux-x86_64/build_artifact.Dockerfile", envJavet),
		lf("docker/linux-x86_64/base_gradle.Dockerfile", patch.Dotted(`x86_64-`+triple+` `)),
		lf("docker/linux-x86_64/build.env", envJavet),
		lf("docker/windows-x86_64/base.Dockerfile", patch.Dotted(`javet-windows:`+triple+` `)),
		lf("docker/windows-x86_64/build.Dockerfile", patch.Dotted(`javet-windows:`+triple+`$`)),
		lf("android/javet-android/build.gradle.kts",
			patch.Dotted(`const val JAVET = "`+triple+`"$`),
		),
		lf("android/javet-android/src/main/AndroidManifest.xml",
			patch.Dotted(`versionName="`+triple+`"$`),
		),
		lf("docs/conf.py", patch.Dotted(`release\s*=\s*'`+triple+`'$`)),
		lf("docs/tutorial/basic/installation.rst",
			patch.Dotted(`<version>`+triple+`</version>`),
			patch.Dotted(`<javet\.version>`+triple+`</javet\.version>$`),
			patch.Dotted(`javet[\-\w$]*:`+triple+`["'@]{1}`),
			patch.Dotted(`version: '`+triple+`'`),
		),
		lf("android/pom.xml",
			patch.Dotted(`^    <version>`+triple+`</version>$`),
			patch.Dotted(`^        <tag>`+triple+`</tag>$`),
		),
		lf("cpp/build-android.sh", scriptJavet),
		lf("cpp/build-linux-arm64.sh", scriptJavet),
		lf("cpp/build-linux-x86_64.sh", scriptJavet),
		lf("cpp/build-macos.sh", scriptJavet),
		crlf("cpp/build-windows.cmd", scriptJavet),
		lf("src/main/java/com/caoccao/javet/interop/loader/JavetLibLoader.java",
			patch.Dotted(`LIB_VERSION = "`+triple+`";$`),
		),
		crlf("cpp/jni/javet_resource_node.rc", resourceJavet...),
		crlf("cpp/jni/javet_resource_v8.rc", resourceJavet...),
		crlf("scripts/node/javet-rebuild/rebuild.cmd", patch.Dotted(`v\.`+triple+`\.lib`)),
		lf("scripts/node/javet-rebuild/rebuild.sh", patch.Dotted(`v\.`+triple+`\.so`)),
	},
}

var (
	workflowJavet = patch.Dotted(`JAVET_VERSION: ` + triple)
	envJavet      = patch.Dotted(`JAVET_VERSION=` + triple)
	scriptJavet   = patch.Dotted(`JAVET_VERSION=` + triple + `$`)

	// Windows resource scripts carry both the dotted string and the comma tuple.
	resourceJavet = []patch.Rule{
		patch.Dotted(`"` + triple),
		patch.Dotted(`v\.` + triple),
		patch.CommaTuple(tuple),
	}
)
