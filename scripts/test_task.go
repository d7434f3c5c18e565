package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// runTest prints only the per-package ok/FAIL lines.
func runTest() error {
	PrintGreen("running tests")
	cleanCache()
	return streamGo(func(line string) {
		switch {
		case strings.HasPrefix(line, "ok"):
			PrintGreen(line)
		case strings.HasPrefix(line, "FAIL"), strings.Contains(line, "build failed"), strings.Contains(line, "setup failed"):
			PrintRed(line)
		}
	}, "test", "./...", "-cover", "-count=1")
}

func runTestAll() error {
	PrintGreen("running tests (all with coverage)")
	if err := exec.Command("go", "clean", "-testcache").Run(); err != nil {
		return fmt.Errorf("go clean -testcache: %w", err)
	}
	return passthrough("test", "./...", "-cover")
}

// runTestDetail is verbose output minus the "[no test files]" noise.
func runTestDetail() error {
	PrintGreen("running tests (detail)")
	cleanCache()
	return streamGo(func(line string) {
		switch {
		case strings.Contains(line, "[no test files]"):
		case strings.HasPrefix(line, "ok"):
			PrintGreen(line)
		case strings.HasPrefix(line, "FAIL"):
			PrintRed(line)
		default:
			fmt.Println(line)
		}
	}, "test", "./...", "-v", "-count=1")
}

// runReport prints the full toss report for the default synthetic dataset.
func runReport() error {
	PrintBlue("toss report (seed 42)")
	return passthrough(append([]string{"run", "./cmd/run", "-seed", "42"}, os.Args[2:]...)...)
}

func runServe() error {
	PrintBlue("serving on :5808")
	return passthrough(append([]string{"run", "./cmd/svr", "-log-mode", "dev"}, os.Args[2:]...)...)
}

func cleanCache() {
	if err := exec.Command("go", "clean", "-testcache").Run(); err != nil {
		PrintRed(err.Error())
	}
}

func passthrough(args ...string) error {
	cmd := exec.Command("go", args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("go %s: %w", args[0], err)
	}
	return nil
}

// streamGo merges stdout and stderr so compile errors reach each too.
func streamGo(each func(line string), args ...string) error {
	cmd := exec.Command("go", args...)
	out, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting go %s: %w", args[0], err)
	}
	sc := bufio.NewScanner(out)
	for sc.Scan() {
		each(sc.Text())
	}
	werr := cmd.Wait()
	if werr != nil {
		return errors.Join(errors.New("tests finished with errors"), sc.Err())
	}
	return sc.Err()
}
