package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"sjavac/internal/project"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB: ограничение для тестового корпуса
)

// languageSeeds cover each line kind and the usual failure shapes.
var languageSeeds = []string{
	"",
	"// only a comment\n",
	"int a = 1, b, c = a;\n",
	"final char c = 'x';\nString s = \"a, b\";\n",
	"void f(int a, final double b) {\n    if (a || b) {\n        a = 2;\n    }\n    return;\n}\n",
	"void f() {\n    while (true) {\n        f();\n    }\n    return;\n}\n",
	"void f() {\n}\n",
	"void f() {\n    return;\n",
	"}\n",
	"int a\n",
	"  // indented comment\n",
	"boolean b = 1.5e3;\n",
	"void f(int a, int a) {\n    return;\n}\n",
	"void f() {\n    void g() {\n        return;\n    }\n    return;\n}\n",
	"f();\n",
}

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
	f.Add([]byte(project.SampleSource()))
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "driver", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.sjava файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != project.DefaultSuffix {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
