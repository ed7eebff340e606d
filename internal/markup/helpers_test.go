package markup

import (
	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

func findAll(root *xmlquery.Node, local string) []*xmlquery.Node {
	return xmlquery.QuerySelectorAll(root, xpath.MustCompile("//*[local-name()='"+local+"']"))
}

func elementByIdShort(root *xmlquery.Node, idShort string) *xmlquery.Node {
	for _, n := range xmlquery.QuerySelectorAll(root, xpath.MustCompile("//*[local-name()='idShort']")) {
		if n.InnerText() == idShort {
			return n.Parent
		}
	}
	return nil
}

func localNames(nodes []*xmlquery.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Data
	}
	return out
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}
