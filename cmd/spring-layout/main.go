/*
 * spring-layout computes a 2D spring embedding of the graph received on
 * stdin in json format and writes the graph with positions to stdout
 */
package main

import "github.com/suxatcode/spring-layout/internal/app"

func main() {
	app.Main()
}
