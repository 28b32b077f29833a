package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	cssComment    = regexp.MustCompile(`(?s)/\*.*?\*/`)
	cssWhitespace = regexp.MustCompile(`\s+`)
	cssPunct      = regexp.MustCompile(`\s*([{}:;,>+~])\s*`)
	jsLineComment = regexp.MustCompile(`(?m)^\s*//.*$`)
)

// Simple CSS minifier
func minifyCSS(content string) string {
	content = cssComment.ReplaceAllString(content, "")
	content = cssWhitespace.ReplaceAllString(content, " ")
	content = cssPunct.ReplaceAllString(content, "$1")
	content = strings.ReplaceAll(content, ";}", "}")
	return strings.TrimSpace(content)
}

// Simple JS minifier (basic): drops comment lines and indentation
func minifyJS(content string) string {
	content = jsLineComment.ReplaceAllString(content, "")
	content = cssComment.ReplaceAllString(content, "")

	var result []string
	for _, line := range strings.Split(content, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}

func minifyFile(inputPath string, minify func(string) string) error {
	content, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", inputPath, err)
	}

	ext := filepath.Ext(inputPath)
	outputPath := strings.TrimSuffix(inputPath, ext) + ".min" + ext
	minified := minify(string(content))

	if err := os.WriteFile(outputPath, []byte(minified), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	originalSize := len(content)
	reduction := 0.0
	if originalSize > 0 {
		reduction = float64(originalSize-len(minified)) / float64(originalSize) * 100
	}
	fmt.Printf("Minified %s: %d bytes -> %d bytes (%.1f%% reduction)\n",
		filepath.Base(inputPath), originalSize, len(minified), reduction)

	return nil
}

func minifyDir(pattern string, minify func(string) string) {
	files, err := filepath.Glob(pattern)
	if err != nil {
		fmt.Printf("Bad pattern %s: %v\n", pattern, err)
		return
	}
	for _, file := range files {
		if strings.Contains(filepath.Base(file), ".min.") {
			continue
		}
		if err := minifyFile(file, minify); err != nil {
			fmt.Printf("Error minifying %s: %v\n", file, err)
		}
	}
}

func main() {
	fmt.Println("Minifying CSS files...")
	minifyDir("static/css/*.css", minifyCSS)

	fmt.Println("\nMinifying JS files...")
	minifyDir("static/js/*.js", minifyJS)

	fmt.Println("\nMinification complete!")
}
