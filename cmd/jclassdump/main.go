// Copyright 2024 The GoJVMS Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	klog "github.com/go-kratos/kratos/v2/log"
	classfile "github.com/gojvms/classfile"
	"github.com/spf13/cobra"
)

var (
	all      bool
	verbose  bool
	fields   bool
	methods  bool
	pool     bool
	verify   bool
	unknown  bool
)

func prettyPrint(buf []byte) string {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, buf, "", "\t"); err != nil {
		log.Println("JSON parse error: ", err)
		return string(buf)
	}
	return pretty.String()
}

func isDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

func dumpClassFile(filename string, cmd *cobra.Command) {
	log.Printf("Processing filename %s", filename)

	data, err := ioutil.ReadFile(filename)
	if err != nil {
		log.Printf("Error while reading file: %s, reason: %s", filename, err)
		return
	}

	opts := &classfile.Options{AllowUnknownAttributes: unknown}
	if verbose {
		opts.Logger = klog.NewStdLogger(os.Stdout)
	}
	c := classfile.NewBytes(data, opts)

	if err := c.Parse(); err != nil {
		log.Printf("Error while parsing file: %s, reason: %s", filename, err)
		return
	}

	wantVerify, _ := cmd.Flags().GetBool("verify")
	if wantVerify {
		if err := classfile.Verify(c); err != nil {
			log.Printf("Verification failed for %s: %s", filename, err)
		}
	}

	wantPool, _ := cmd.Flags().GetBool("pool")
	if wantPool {
		b, _ := json.Marshal(c.ConstantPool)
		fmt.Println(prettyPrint(b))
	}

	wantFields, _ := cmd.Flags().GetBool("fields")
	if wantFields {
		b, _ := json.Marshal(c.Fields)
		fmt.Println(prettyPrint(b))
	}

	wantMethods, _ := cmd.Flags().GetBool("methods")
	if wantMethods {
		b, _ := json.Marshal(c.Methods)
		fmt.Println(prettyPrint(b))
	}

	wantAll, _ := cmd.Flags().GetBool("all")
	if wantAll {
		b, _ := json.Marshal(c)
		fmt.Println(prettyPrint(b))
	}
}

func dump(cmd *cobra.Command, args []string) {
	path := args[0]

	if !isDirectory(path) {
		dumpClassFile(path, cmd)
		return
	}

	var files []string
	filepath.Walk(path, func(p string, f os.FileInfo, err error) error {
		if err == nil && !isDirectory(p) {
			files = append(files, p)
		}
		return nil
	})
	for _, f := range files {
		dumpClassFile(f, cmd)
	}
}

func main() {
	var rootCmd = &cobra.Command{
		Use:   "jclassdump",
		Short: "A JVM class file parser",
		Long:  "jclassdump decodes and verifies .class files, printing their structure as JSON",
	}

	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("jclassdump version 0.0.1")
		},
	}

	var dumpCmd = &cobra.Command{
		Use:   "dump",
		Short: "Dumps a class file or a directory of class files",
		Args:  cobra.MinimumNArgs(1),
		Run:   dump,
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(dumpCmd)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	dumpCmd.Flags().BoolVarP(&pool, "pool", "", false, "Dump the constant pool")
	dumpCmd.Flags().BoolVarP(&fields, "fields", "", false, "Dump fields")
	dumpCmd.Flags().BoolVarP(&methods, "methods", "", false, "Dump methods")
	dumpCmd.Flags().BoolVarP(&verify, "verify", "", false, "Run semantic verification")
	dumpCmd.Flags().BoolVarP(&unknown, "allow-unknown-attributes", "", false, "Skip unrecognized attributes instead of failing")
	dumpCmd.Flags().BoolVarP(&all, "all", "", false, "Dump everything")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
