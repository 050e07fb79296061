/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/azure/appinsights-pricing/cmd"

func main() {
	cmd.Execute()
}
