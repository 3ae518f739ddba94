/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/jnfrdm/polito-collaborations-dashboard/cmd"

func main() {
	cmd.Execute()
}
