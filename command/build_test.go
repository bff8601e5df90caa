package command_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tie/mclaunch/command"
	"github.com/tie/mclaunch/models"
	"github.com/tie/mclaunch/rules"
)

func lit(ss ...string) []models.Argument {
	args := make([]models.Argument, len(ss))
	for i, s := range ss {
		args[i] = models.LiteralArg(s)
	}
	return args
}

func TestFlattenJVMTerminator(t *testing.T) {
	assert.Equal(t, []string{"-X", "${main_class}"},
		command.FlattenJVM(lit("-X", "${main_class}"), rules.Linux, nil))
	assert.Equal(t, []string{"-X", "${main_class}"},
		command.FlattenJVM(lit("-X"), rules.Linux, nil))
	assert.Equal(t, []string{"${main_class}"},
		command.FlattenJVM(nil, rules.Linux, nil))
}

func TestBuildStructured(t *testing.T) {
	linuxOnly := []models.Rule{{Action: "allow", OS: &models.OSRule{Name: "linux"}}}
	d := &models.VersionDescriptor{
		ID:        "x",
		MainClass: "Main",
		Arguments: &models.Arguments{
			JVM: []models.Argument{
				models.LiteralArg("-Xmx1G"),
				models.ConditionalArg(linuxOnly, "-Dlinux=true"),
			},
		},
	}
	want := []string{
		"-Djava.library.path=${natives_directory}", "-cp", "${classpath}",
		"-Xmx1G", "-Dlinux=true", "${main_class}",
	}
	got := command.Build(d, rules.Linux, nil)
	assert.Equal(t, want, got.JVM)
	assert.Empty(t, got.Game)

	got = command.Build(d, rules.Windows, nil)
	assert.Equal(t, []string{
		"-Djava.library.path=${natives_directory}", "-cp", "${classpath}",
		"-Xmx1G", "${main_class}",
	}, got.JVM)

	filled := command.Fill(command.Build(d, rules.Linux, nil).JVM, nil)
	assert.Equal(t, want, filled)
}

func TestBuildKeepsDescriptorClasspath(t *testing.T) {
	d := &models.VersionDescriptor{
		ID:        "1.20.1",
		MainClass: "net.minecraft.client.main.Main",
		Arguments: &models.Arguments{
			JVM:  lit("-Djava.library.path=${natives_directory}", "-cp", "${classpath}"),
			Game: lit("--username", "${auth_player_name}"),
		},
	}
	got := command.Build(d, rules.Linux, nil)
	assert.Equal(t, []string{"-Djava.library.path=${natives_directory}", "-cp", "${classpath}", "${main_class}"}, got.JVM)
	assert.Equal(t, []string{"--username", "${auth_player_name}"}, got.Game)
}

func TestBuildFeatures(t *testing.T) {
	demo := []models.Rule{{Action: "allow", Features: map[string]bool{"is_demo_user": true}}}
	d := &models.VersionDescriptor{
		ID:        "x",
		MainClass: "Main",
		Arguments: &models.Arguments{
			Game: []models.Argument{
				models.LiteralArg("--version"),
				models.ConditionalArg(demo, "--demo"),
				models.ConditionalArg([]models.Rule{{Action: "allow", Features: map[string]bool{"has_custom_resolution": true}}},
					"--width", "${resolution_width}"),
			},
		},
	}
	assert.Equal(t, []string{"--version"}, command.Build(d, rules.Linux, nil).Game)
	assert.Equal(t, []string{"--version", "--demo"},
		command.Build(d, rules.Linux, rules.Features{"is_demo_user": true}).Game)
	assert.Equal(t, []string{"--version", "--width", "${resolution_width}"},
		command.Build(d, rules.Linux, rules.Features{"has_custom_resolution": true}).Game)
}

func TestBuildLegacy(t *testing.T) {
	legacy := "--username ${auth_player_name}  --gameDir ${game_directory}"
	d := &models.VersionDescriptor{ID: "1.7.10", MainClass: "Main", MinecraftArguments: &legacy}
	got := command.Build(d, rules.OSX, nil)
	assert.Equal(t, []string{"--username", "${auth_player_name}", "--gameDir", "${game_directory}"}, got.Game)
	assert.Equal(t, []string{"-Djava.library.path=${natives_directory}", "-cp", "${classpath}", "${main_class}"}, got.JVM)
}

func TestBuildWithoutArguments(t *testing.T) {
	d := &models.VersionDescriptor{ID: "x", MainClass: "Main"}
	got := command.Build(d, rules.Linux, nil)
	assert.Empty(t, got.Game)
	assert.Equal(t, "${main_class}", got.JVM[len(got.JVM)-1])
}

func TestWithJVMOptions(t *testing.T) {
	tmpl := command.Templates{
		JVM:  []string{"-cp", "${classpath}", "${main_class}"},
		Game: []string{"--demo"},
	}
	got := tmpl.WithJVMOptions("-Xmx2G", "-XX:+UseG1GC")
	assert.Equal(t, []string{"-cp", "${classpath}", "-Xmx2G", "-XX:+UseG1GC", "${main_class}"}, got.JVM)
	assert.Equal(t, []string{"--demo"}, got.Game)
	assert.Equal(t, []string{"-cp", "${classpath}", "${main_class}"}, tmpl.JVM)
}
